package main

import (
	"bufio"
	"fmt"
	"os"

	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/perft"
	"github.com/cricklet/movegen/internal/uci"
	"github.com/pkg/profile"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/CmdUciMain"))
		defer p.Stop()
	}

	logger := FuncLogger(func(s string) {
		fmt.Fprint(os.Stderr, s)
	})
	if !Contains(args, "verbose") {
		logger = SilentLogger
	}

	h := uci.NewHandler(
		uci.WithLogger(logger),
		uci.WithRunner(perft.NewRunner(perft.WithLogger(logger))),
	)

	scanner := bufio.NewScanner(os.Stdin)

	for !h.Done() && scanner.Scan() {
		result, err := h.HandleInput(scanner.Text())
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
