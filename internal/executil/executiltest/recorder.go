package executiltest

import (
	"context"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
)

// Recorder is a Runner that records commands instead of executing them.
type Recorder struct {
	Commands []executil.Command
	// Outputs maps a command line prefix (e.g. "gcloud run services describe") to the stdout returned by Output.
	Outputs map[string]string
	// Errors maps a command line prefix to the error returned by both Run and Output.
	Errors map[string]error
}

func NewRecorder() *Recorder {
	return &Recorder{
		Outputs: map[string]string{},
		Errors:  map[string]error{},
	}
}

func (r *Recorder) Run(_ context.Context, cmd executil.Command) error {
	r.Commands = append(r.Commands, cmd)
	err, _ := lookup(r.Errors, cmd)
	return err
}

func (r *Recorder) Output(_ context.Context, cmd executil.Command) (string, error) {
	r.Commands = append(r.Commands, cmd)
	if err, ok := lookup(r.Errors, cmd); ok {
		return "", err
	}
	out, _ := lookup(r.Outputs, cmd)
	return out, nil
}

// Lines renders every recorded command as a shell line.
func (r *Recorder) Lines() []string {
	lines := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		lines = append(lines, c.String())
	}
	return lines
}

func lookup[T any](entries map[string]T, cmd executil.Command) (T, bool) {
	line := cmd.String()
	for prefix, v := range entries {
		if strings.HasPrefix(line, prefix) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
