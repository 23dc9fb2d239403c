package lib

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether the stream is an interactive terminal.
// Anything that is not an *os.File (buffers in tests, pipes wrapped by callers) is not.
func IsTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type Streams struct {
	In       io.Reader
	Out, Err io.Writer
}

func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}
