package util

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveJson(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "out.json")
	require.NoError(t, SaveJson(p, map[string]int{"x": 1}))

	bs, err := os.ReadFile(p)
	require.NoError(t, err)
	out := make(map[string]int)
	require.NoError(t, json.Unmarshal(bs, &out))
	assert.Equal(t, 1, out["x"])

	assert.Error(t, SaveJson(filepath.Join(t.TempDir(), "bad.json"), make(chan int)))
}

func TestMakeRange(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, MakeRange(3))
	assert.Empty(t, MakeRange(0))
}

func TestCopySlices(t *testing.T) {
	ints := []int{1, 2}
	c := CopyIntSlice(ints)
	c[0] = 9
	assert.Equal(t, []int{1, 2}, ints)

	fs := []float64{1.5}
	cf := CopyFloatSlice(fs)
	cf[0] = 0
	assert.Equal(t, []float64{1.5}, fs)
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("loud", new(bytes.Buffer))
	assert.Error(t, err)

	out := new(bytes.Buffer)
	logger, err := NewLogger("info", out)
	require.NoError(t, err)
	logger.Debug().Msg("hidden")
	logger.Info().Str("comparison", "3-arm").Msg("running")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	entry := make(map[string]interface{})
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "running", entry["message"])
	assert.Equal(t, "3-arm", entry["comparison"])
	assert.Contains(t, entry, "time")

	assert.False(t, IsTerminal(out))
}

func TestParallelOutput(t *testing.T) {
	o := NewParallelOutput()
	assert.Equal(t, "", o.Get())
	o.Set("a")
	assert.True(t, o.TrySet("b"))
	assert.Equal(t, "b", o.Get())
}

func TestTerminalPrinter(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewTerminalPrinter(time.Hour, out)
	first := p.NewOutput()
	second := p.NewOutput()
	first.Set("experiment one")
	second.Set("experiment two")

	p.Start(context.Background())
	p.Stop()

	assert.Contains(t, out.String(), "experiment one")
	assert.Contains(t, out.String(), "experiment two")
}

func TestTerminalPrinter_StopWithoutStart(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewTerminalPrinter(time.Hour, out)
	p.NewOutput().Set("never drawn")

	done := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked on a printer that was never started")
	}
	assert.Empty(t, out.String())
}

func TestTerminalPrinter_StopTwice(t *testing.T) {
	p := NewTerminalPrinter(time.Hour, new(bytes.Buffer))
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	assert.NotPanics(t, p.Stop)
}
