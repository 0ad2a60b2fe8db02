package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisibleLength(t *testing.T) {
	assert.Equal(t, 7, visibleLength("depth 5"))
	assert.Equal(t, 7, visibleLength("\x1b[36mdepth 5\x1b[0m"))
	assert.Equal(t, 3, visibleLength("♔♕♖"))
}

func TestUnitForDuration(t *testing.T) {
	assert.Equal(t, time.Nanosecond, unitForDuration(500*time.Nanosecond))
	assert.Equal(t, time.Microsecond, unitForDuration(20*time.Microsecond))
	assert.Equal(t, time.Millisecond, unitForDuration(300*time.Millisecond))
	assert.Equal(t, time.Second, unitForDuration(5*time.Second))
	assert.Equal(t, time.Minute, unitForDuration(2*time.Hour))
}

func TestNoProgressBar(t *testing.T) {
	bar := NoProgressBar(10, "label")
	bar.Set(3)
	bar.Add(4)
	bar.Close()
}
