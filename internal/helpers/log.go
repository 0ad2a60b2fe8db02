package helpers

import (
	"fmt"
	"strings"

	"github.com/apex/log"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _apexLogger struct {
	entry log.Interface
}

func (l *_apexLogger) Println(v ...any) {
	l.entry.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *_apexLogger) Printf(format string, v ...any) {
	l.entry.Infof(format, v...)
}
func (l *_apexLogger) Print(v ...any) {
	l.entry.Info(fmt.Sprint(v...))
}

// DefaultLogger writes through apex/log's package-level logger, so handlers
// installed with log.SetHandler apply.
var DefaultLogger Logger = &_apexLogger{log.Log}

// NewFieldLogger tags every line with the given fields, e.g. {"component": "perft"}.
func NewFieldLogger(fields map[string]any) Logger {
	return &_apexLogger{log.WithFields(log.Fields(fields))}
}

type _funcLogger struct {
	write func(string)
}

func (l *_funcLogger) Println(v ...any) {
	l.write(fmt.Sprintln(v...))
}
// Printf ends the line like log.Printf does.
func (l *_funcLogger) Printf(format string, v ...any) {
	s := fmt.Sprintf(format, v...)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	l.write(s)
}
func (l *_funcLogger) Print(v ...any) {
	l.write(fmt.Sprint(v...))
}

func FuncLogger(write func(string)) Logger {
	return &_funcLogger{write}
}

var SilentLogger Logger = FuncLogger(func(string) {})
