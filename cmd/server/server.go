package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	. "github.com/cricklet/movegen/internal/bitboards"
	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/game"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/movegen"
	"github.com/cricklet/movegen/internal/perft"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const _maxPerftDepth = 5

type MovesResponse struct {
	FenString string   `json:"fenString"`
	Player    string   `json:"player"`
	InCheck   bool     `json:"inCheck"`
	Moves     []string `json:"moves"`
}

type PerftResponse struct {
	FenString string            `json:"fenString"`
	Depth     int               `json:"depth"`
	Moves     map[string]uint64 `json:"moves"`
	Nodes     uint64            `json:"nodes"`
}

type UpdateToWeb struct {
	FenString     string   `json:"fenString"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	Error         string   `json:"error,omitempty"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	Fen       *string `json:"fen"`
	Selection *string `json:"selection"`
	Move      *string `json:"move"`
}

func (u MessageFromWeb) String() string {
	if u.Fen != nil {
		return fmt.Sprint("MessageFromWeb Fen: ", *u.Fen)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	return "MessageFromWeb unknown"
}

func positionFromRequest(r *http.Request) (Position, Error) {
	fenString := r.URL.Query().Get("fen")
	if fenString == "" {
		fenString = fen.StartFen
	}
	return fen.PositionFromFenString(fenString)
}

func writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err Error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func uciStrings(moves []Move) []string {
	return MapSlice(moves, func(m Move) string { return m.String() })
}

// movesFromSquare lists the legal moves starting on selection, e.g. "e2".
func movesFromSquare(g *movegen.Generator, pos *Position, selection string) ([]string, Error) {
	location, err := FileRankFromString(selection)
	if !IsNil(err) {
		return nil, err
	}
	from := SingleBitboard(IndexFromFileRank(location))

	return uciStrings(FilterSlice(g.GenerateMoves(pos), func(m Move) bool {
		return m.From == from
	})), NilError
}

type server struct {
	logger   Logger
	upgrader websocket.Upgrader

	getGenerator     func() **movegen.Generator
	releaseGenerator func(**movegen.Generator)
}

func newServer(logger Logger) *server {
	s := &server{logger: logger}
	s.getGenerator, s.releaseGenerator, _ = CreatePool(
		func() *movegen.Generator { return movegen.New() },
		func(**movegen.Generator) {},
	)
	return s
}

func (s *server) moves(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromRequest(r)
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	generator := s.getGenerator()
	defer s.releaseGenerator(generator)

	writeJson(w, http.StatusOK, MovesResponse{
		FenString: fen.FenStringForPosition(&pos),
		Player:    pos.SideToMove().String(),
		InCheck:   (*generator).InCheck(&pos),
		Moves:     uciStrings((*generator).GenerateMoves(&pos)),
	})
}

func (s *server) perft(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromRequest(r)
	if !IsNil(err) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	depth, parseErr := strconv.Atoi(r.URL.Query().Get("depth"))
	if !IsNil(parseErr) || depth < 1 || depth > _maxPerftDepth {
		writeError(w, http.StatusBadRequest, Errorf("depth must be between 1 and %v", _maxPerftDepth))
		return
	}

	divide, err := perft.NewRunner(perft.WithLogger(s.logger)).Divide(pos, depth)
	if !IsNil(err) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, http.StatusOK, PerftResponse{
		FenString: fen.FenStringForPosition(&pos),
		Depth:     depth,
		Moves:     divide.Moves,
		Nodes:     divide.Total,
	})
}

// session is the state of one websocket connection.
type session struct {
	generator *movegen.Generator
	position  Position
	lastMove  Optional[Move]
	logger    Logger
}

func (c *session) handleMessage(message MessageFromWeb) UpdateToWeb {
	update := UpdateToWeb{}

	var err Error
	switch {
	case message.Fen != nil:
		var pos Position
		pos, err = fen.PositionFromFenString(*message.Fen)
		if IsNil(err) {
			c.position = pos
			c.lastMove = Empty[Move]()
		}
	case message.Selection != nil:
		if *message.Selection != "" {
			update.Selection = *message.Selection
			update.PossibleMoves, err = movesFromSquare(c.generator, &c.position, *message.Selection)
		}
	case message.Move != nil:
		move := c.generator.FindMove(&c.position, *message.Move)
		if move.HasValue() {
			c.position.Make(move.Value())
			c.lastMove = move
		} else {
			err = Errorf("illegal move %v", *message.Move)
		}
	default:
		err = Errorf("empty message")
	}

	if !IsNil(err) {
		c.logger.Println("handleMessage:", message, err)
		update.Error = err.Error()
	}

	update.FenString = fen.FenStringForPosition(&c.position)
	update.Player = c.position.SideToMove().String()
	if c.lastMove.HasValue() {
		update.LastMove = c.lastMove.Value().String()
	}
	return update
}

func (s *server) ws(w http.ResponseWriter, r *http.Request) {
	c, upgradeErr := s.upgrader.Upgrade(w, r, nil)
	if !IsNil(upgradeErr) {
		s.logger.Println("upgrade:", upgradeErr)
		return
	}
	defer c.Close()

	conn := &session{
		generator: movegen.New(),
		position:  fen.MustPositionFromFenString(fen.StartFen),
		logger:    s.logger,
	}

	for {
		_, bytes, err := c.ReadMessage()
		if !IsNil(err) {
			s.logger.Printf("ws closed: %v", err)
			return
		}

		var message MessageFromWeb
		err = json.Unmarshal(bytes, &message)
		if !IsNil(err) {
			s.logger.Println("json unmarshal:", err)
			continue
		}
		s.logger.Println("received", message)

		update := conn.handleMessage(message)
		s.logger.Println("sending", update)

		err = c.WriteJSON(update)
		if !IsNil(err) {
			s.logger.Println("websocket:", err)
			return
		}
	}
}

func (s *server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/moves", s.moves).Methods(http.MethodGet)
	router.HandleFunc("/perft", s.perft).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.ws)
	return router
}
