package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"

	. "github.com/cricklet/movegen/internal/helpers"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	log.SetHandler(text.New(os.Stderr))

	port := 8002

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	logger := NewFieldLogger(map[string]any{"component": "server"})
	logger.Println("serving at", port)

	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), newServer(logger).router()))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
