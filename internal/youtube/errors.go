package youtube

import (
	"fmt"
	"os/exec"
)

var (
	// ErrNoResults is returned when a search yields an empty result set.
	ErrNoResults = fmt.Errorf("no results in search")

	// ErrNoMatch is returned when every variant of a track has been tried
	// without an acceptable candidate. This is an expected outcome for
	// rare or regional content, not a defect.
	ErrNoMatch = fmt.Errorf("no matching source found")
)

// commandError wraps yt-dlp command failures with additional context.
type commandError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("yt-dlp error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *commandError) Unwrap() error {
	return e.wrapped
}

// newCommandError creates a commandError with a truncated command line.
func newCommandError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	return &commandError{
		cmd:     cmdStr,
		output:  string(output),
		wrapped: err,
	}
}
