// Package voice implements the client-side turn-taking state machine that
// coordinates capture, transmission, and playback.
package voice

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"
)

// State is the machine's current phase. The machine guarantees at most one
// of listening, transmitting, or speaking is active at any instant.
type State int

const (
	StateIdle State = iota
	StateListening
	StateTransmitting
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateTransmitting:
		return "transmitting"
	case StateSpeaking:
		return "speaking"
	}
	return "unknown"
}

// Capturer produces one finalized transcript per call. An empty transcript
// with a nil error means silence.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// Speaker speaks text, returning once playback completes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Transmitter sends one user message to the conversation server and returns
// the full assembled reply.
type Transmitter interface {
	Transmit(ctx context.Context, message string) (string, error)
}

// DefaultApology is spoken when a turn fails, so the user is never left
// waiting in silence.
const DefaultApology = "Sorry, I encountered an error. Please try again."

// Timings for the scheduled transitions in continuous mode. Kept explicit
// so a manual stop can preempt every one of them.
const (
	defaultSettleDelay     = 300 * time.Millisecond
	defaultEmptyRetryDelay = 500 * time.Millisecond
	defaultErrorRetryDelay = time.Second
)

// Config wires the machine's collaborators.
type Config struct {
	Capture  Capturer
	Speak    Speaker
	Transmit Transmitter

	// OnState is called on every transition, from the machine goroutine.
	OnState func(State)

	// Apology overrides DefaultApology when non-empty.
	Apology string

	// Delay overrides; zero means default.
	SettleDelay     time.Duration
	EmptyRetryDelay time.Duration
	ErrorRetryDelay time.Duration
}

// Machine is the turn-taking state machine. All capture, transmit, and
// playback activity happens on a single internal goroutine, which is what
// enforces the one-active-phase invariant.
type Machine struct {
	cfg Config

	mu         sync.Mutex
	state      State
	running    bool
	continuous bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// ErrBusy is returned by Start while a conversation loop is already running.
var ErrBusy = errors.New("voice machine already running")

// NewMachine creates a machine in the Idle state.
func NewMachine(cfg Config) *Machine {
	if cfg.Apology == "" {
		cfg.Apology = DefaultApology
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.EmptyRetryDelay == 0 {
		cfg.EmptyRetryDelay = defaultEmptyRetryDelay
	}
	if cfg.ErrorRetryDelay == 0 {
		cfg.ErrorRetryDelay = defaultErrorRetryDelay
	}
	return &Machine{cfg: cfg, state: StateIdle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Continuous reports whether continuous mode is active.
func (m *Machine) Continuous() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.continuous
}

// Start begins a conversation loop: one turn in single-shot mode, or capture
// re-armed after every turn in continuous mode. It returns ErrBusy unless
// the machine is Idle; the trigger that calls Start is effectively disabled
// in every other state.
func (m *Machine) Start(ctx context.Context, continuous bool) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrBusy
	}
	m.running = true
	runCtx, cancel := context.WithCancel(ctx)
	m.continuous = continuous
	m.cancel = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.loop(runCtx)
	}()
	return nil
}

// Stop forces continuous mode off, cancels any in-flight capture, transmit,
// or playback, and waits for the machine to settle back to Idle.
func (m *Machine) Stop() {
	m.mu.Lock()
	m.continuous = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Wait blocks until the current loop returns to Idle.
func (m *Machine) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// loop runs capture → transmit → speak turns until the context is cancelled
// or a single-shot turn finishes. It is the only goroutine that touches the
// capture and playback engines, so releasing one before acquiring the other
// falls out of the sequential flow.
func (m *Machine) loop(ctx context.Context) {
	defer func() {
		m.setState(StateIdle)
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		m.setState(StateListening)
		transcript, err := m.cfg.Capture.Capture(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The capture source is exhausted for good; retrying
				// would spin.
				return
			}
			log.Printf("WARN: capture failed: %v", err)
			if !m.Continuous() {
				return
			}
			if !m.pause(ctx, m.cfg.ErrorRetryDelay) {
				return
			}
			continue
		}
		if transcript == "" {
			// Silence. Re-arm in continuous mode, otherwise give up.
			if !m.Continuous() {
				return
			}
			if !m.pause(ctx, m.cfg.EmptyRetryDelay) {
				return
			}
			continue
		}

		m.setState(StateTransmitting)
		reply, err := m.cfg.Transmit.Transmit(ctx, transcript)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("WARN: transmit failed: %v", err)
			reply = m.cfg.Apology
		}

		m.setState(StateSpeaking)
		if reply != "" {
			if err := m.cfg.Speak.Speak(ctx, reply); err != nil && ctx.Err() == nil {
				log.Printf("WARN: playback failed: %v", err)
			}
		}
		if ctx.Err() != nil {
			return
		}

		if !m.Continuous() {
			return
		}
		if !m.pause(ctx, m.cfg.SettleDelay) {
			return
		}
	}
}

// pause waits for a scheduled transition delay. It returns false when the
// wait was preempted by cancellation.
func (m *Machine) pause(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// setState records the transition and notifies outside the lock, so the
// OnState callback may call back into the machine.
func (m *Machine) setState(s State) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	m.mu.Unlock()

	if changed && m.cfg.OnState != nil {
		m.cfg.OnState(s)
	}
}
