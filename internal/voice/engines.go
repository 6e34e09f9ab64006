package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandCapturer runs an external speech-to-text command and takes its
// stdout as the finalized transcript. The command is expected to record
// until it detects end of speech and then exit (a whisper or vosk wrapper,
// typically). Cancelling the context kills the process.
type CommandCapturer struct {
	Name string
	Args []string
}

// Capture runs the command once and returns the trimmed transcript. An
// empty transcript means silence, not an error.
func (c *CommandCapturer) Capture(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.Name, c.Args...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("capture command failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommandSpeaker runs an external text-to-speech command (say, espeak,
// piper) with the text appended as the last argument, and returns once
// playback completes.
type CommandSpeaker struct {
	Name string
	Args []string
}

// Speak runs the command and waits for it to finish.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string{}, s.Args...), text)
	if err := exec.CommandContext(ctx, s.Name, args...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speak command failed: %w", err)
	}
	return nil
}

// ReaderCapturer reads one line per capture from an io.Reader. It stands in
// for a microphone when running the client against a terminal: the typed
// line is the "transcript".
type ReaderCapturer struct {
	scanner *bufio.Scanner
}

// NewReaderCapturer creates a capturer over r.
func NewReaderCapturer(r io.Reader) *ReaderCapturer {
	return &ReaderCapturer{scanner: bufio.NewScanner(r)}
}

// Capture returns the next line, or io.EOF when the input is exhausted.
func (c *ReaderCapturer) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// WriterSpeaker "speaks" by writing the text to an io.Writer. Used when no
// text-to-speech command is configured.
type WriterSpeaker struct {
	W io.Writer
}

// Speak writes the text followed by a newline.
func (s *WriterSpeaker) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.W, text)
	return err
}
