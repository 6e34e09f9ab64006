package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecoster/parley/internal/voice"
)

// NewRootCmd creates the root command for the voice client.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voicecli",
		Short: "Parley voice client - talk to a conversation server",
		Long: `Voice client for a parley conversation server. Each turn captures one
utterance, streams it to the server, and plays the reply back. With
--continuous the client re-arms capture after every reply until interrupted.

Capture and playback run external commands when configured; without them the
client reads utterances from stdin and prints replies to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConverse(cmd)
		},
	}

	rootCmd.Flags().String("server", "http://localhost:8080", "Conversation server base URL")
	rootCmd.Flags().Bool("continuous", false, "Re-arm capture after every reply")
	rootCmd.Flags().String("capture-cmd", "", "Speech-to-text command printing the transcript to stdout")
	rootCmd.Flags().String("speak-cmd", "", "Text-to-speech command taking the text as its last argument")
	rootCmd.Flags().Duration("timeout", 2*time.Minute, "Per-turn HTTP timeout")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("parley voicecli v1.0.0")
		},
	}
}

// runConverse wires the engines and runs the turn-taking loop until it
// finishes or the user interrupts.
func runConverse(cmd *cobra.Command) error {
	serverURL, _ := cmd.Flags().GetString("server")
	continuous, _ := cmd.Flags().GetBool("continuous")
	captureCmd, _ := cmd.Flags().GetString("capture-cmd")
	speakCmd, _ := cmd.Flags().GetString("speak-cmd")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	renderBanner(serverURL, continuous)

	client := voice.NewClient(serverURL, timeout)
	if speakCmd != "" {
		// The reply goes to audio; mirror it to the terminal as it
		// streams. Without a speak command the speaker prints it anyway.
		client.OnFragment = renderFragment
	}

	capturer, err := buildCapturer(captureCmd)
	if err != nil {
		return err
	}
	speaker := buildSpeaker(speakCmd)

	machine := voice.NewMachine(voice.Config{
		Capture:  capturer,
		Speak:    speaker,
		Transmit: client,
		OnState:  renderState,
	})

	if err := machine.Start(context.Background(), continuous); err != nil {
		renderError(err)
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	finished := make(chan struct{})
	go func() {
		machine.Wait()
		close(finished)
	}()

	select {
	case <-quit:
		fmt.Println()
		machine.Stop()
	case <-finished:
	}

	if id := client.SessionID(); id != "" {
		fmt.Println(sessionStyle.Render("session: " + id))
	}
	return nil
}

// buildCapturer picks the capture engine: an external speech-to-text
// command when given, stdin lines otherwise.
func buildCapturer(captureCmd string) (voice.Capturer, error) {
	if captureCmd == "" {
		return voice.NewReaderCapturer(os.Stdin), nil
	}
	name, args, err := splitCommand(captureCmd)
	if err != nil {
		return nil, fmt.Errorf("invalid capture command: %w", err)
	}
	return &voice.CommandCapturer{Name: name, Args: args}, nil
}

// buildSpeaker picks the playback engine: an external text-to-speech
// command when given, stdout otherwise.
func buildSpeaker(speakCmd string) voice.Speaker {
	if speakCmd == "" {
		return &voice.WriterSpeaker{W: os.Stdout}
	}
	name, args, _ := splitCommand(speakCmd)
	return &voice.CommandSpeaker{Name: name, Args: args}
}

// splitCommand splits a flag value like "say -v Samantha" into the command
// name and its arguments.
func splitCommand(s string) (string, []string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}
