package helpers

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// ProgressBar is a set of callbacks so different renderers can be swapped in.
type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

type ProgressBarFactory func(total int, label string) ProgressBar

func NoProgressBar(total int, label string) ProgressBar {
	return ProgressBar{func(int) {}, func(int) {}, func() {}}
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if !IsNil(err) {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

// visibleLength ignores ANSI color codes, so colored labels don't shrink the bar.
func visibleLength(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Microsecond {
		return time.Nanosecond
	}
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

// CreateProgressBar prints a line every time the update interval elapses,
// doubling the interval each time.
func CreateProgressBar(total int, label string) ProgressBar {
	lock := sync.Mutex{}
	value := 0

	startTime := time.Now()
	updateDuration := time.Millisecond * 200

	var update = func(forceUpdate bool) {
		if time.Since(startTime) <= updateDuration && !forceUpdate {
			return
		}
		updateDuration *= 2

		if value > total {
			value = total
		} else if value == 0 || total == 0 {
			return
		}

		elapsed := time.Since(startTime)
		perSecond := int64(float64(value) / elapsed.Seconds())

		percent := float64(value) / float64(total)
		percentStr := fmt.Sprintf("%3d", int(percent*100))
		expectedFinish := time.Duration(float64(elapsed) / percent)
		unit := unitForDuration(elapsed)

		prefix := fmt.Sprintf("%s %s%% ", label, percentStr)
		suffix := fmt.Sprintf(" %v => %v @ %v/s", elapsed.Round(unit), expectedFinish.Round(unit), humanize.Comma(perSecond))

		width := termWidth()
		textLen := visibleLength(prefix) + visibleLength(suffix)
		totalProgressLen := MaxInt(width-textLen, 0)
		currentProgressLen := MinInt(MaxInt(int(float64(totalProgressLen)*percent), 0), totalProgressLen)
		remainingProgressLen := totalProgressLen - currentProgressLen

		fmt.Printf("%s%s%s%s\n", prefix, strings.Repeat("=", currentProgressLen), strings.Repeat(" ", remainingProgressLen), suffix)
	}

	return ProgressBar{
		func(i int) {
			lock.Lock()
			defer lock.Unlock()
			value = i
			update(false)
		},
		func(i int) {
			lock.Lock()
			defer lock.Unlock()
			value += i
			update(false)
		}, func() {
			lock.Lock()
			defer lock.Unlock()
			update(true)
		},
	}
}
