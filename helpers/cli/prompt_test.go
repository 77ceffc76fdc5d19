package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/alive/v2"
)

func TestReadLines(t *testing.T) {
	t.Parallel()

	a := alive.NewAlive()
	lines := []string{}
	ReadLines(a, strings.NewReader("  10 25\n\nbuy  \n"), Guard(a, func(line string) {
		lines = append(lines, line)
	}))
	assert.Equal(t, []string{"10 25", "", "buy"}, lines)
}

func TestGuardAfterStop(t *testing.T) {
	t.Parallel()

	a := alive.NewAlive()
	calls := 0
	exec := Guard(a, func(line string) {
		calls++
		if line == "stop" {
			a.Stop()
		}
	})
	ReadLines(a, strings.NewReader("5\nstop\n10\n25\n"), exec)
	exec("late")
	a.Wait()
	assert.Equal(t, 2, calls)
	assert.True(t, a.IsFinished())
}
