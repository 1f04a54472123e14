package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintGoesToChannel(t *testing.T) {
	l := Init()
	l.Printf("loaded %d videos", 3)

	select {
	case msg := <-l.Prints:
		assert.Equal(t, "loaded 3 videos", msg)
	default:
		t.Fatal("expected a message on Prints")
	}
}

func TestPrintErrorFormat(t *testing.T) {
	l := Init()
	l.PrintError("catalog", errors.New("boom"))

	msg := <-l.Prints
	assert.Equal(t, "Error(catalog) -> boom", msg)
}

func TestPrintNeverBlocks(t *testing.T) {
	l := Init()
	for i := 0; i < printsBacklog*2; i++ {
		l.Print("spam")
	}
	assert.Len(t, l.Prints, printsBacklog)

	// zero value logger must not block or panic either
	var zero Logger
	zero.Print("nobody listens")
	zero.PrintError("zero", errors.New("still fine"))
}

func TestAttachFileMirrorsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvasplay.log")

	l := Init()
	require.NoError(t, l.AttachFile(path))
	l.Print("hello mirror")
	l.PrintError("render", errors.New("frame lost"))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello mirror")
	assert.Contains(t, string(data), `"source":"render"`)
	assert.Contains(t, string(data), "frame lost")
}
