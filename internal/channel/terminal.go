package channel

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ErrNoInput is reported to recognition callbacks once the terminal input
// has been fully consumed.
var ErrNoInput = errors.New("no more input")

var (
	aiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
)

// TerminalOutput "speaks" by printing the utterance. The end callback fires
// after a pause proportional to the text length and the speaking rate, so
// the voice pacing is visible on a terminal.
type TerminalOutput struct {
	w       io.Writer
	perChar time.Duration
	sched   Scheduler

	mu      sync.Mutex
	pending Timer
}

// NewTerminalOutput prints to w. perChar is the pause per character at rate 1.
func NewTerminalOutput(w io.Writer, perChar time.Duration, sched Scheduler) *TerminalOutput {
	if sched == nil {
		sched = RealScheduler()
	}
	return &TerminalOutput{w: w, perChar: perChar, sched: sched}
}

func (o *TerminalOutput) Speak(u Utterance, cb SynthesisCallbacks) error {
	if _, err := fmt.Fprintln(o.w, aiStyle.Render("AI: ")+u.Text); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	if cb.OnStart != nil {
		cb.OnStart()
	}

	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	d := time.Duration(float64(o.perChar) * float64(len(u.Text)) / rate)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = o.sched.AfterFunc(d, func() {
		if cb.OnEnd != nil {
			cb.OnEnd()
		}
	})
	return nil
}

func (o *TerminalOutput) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
}

// TerminalInput "hears" one line of r per Start. Lines are read by a
// background goroutine and queued, so Stop never blocks on the reader and a
// line typed between cycles is kept for the next Start.
type TerminalInput struct {
	w      io.Writer
	cfg    RecognitionConfig
	notify chan struct{}

	mu        sync.Mutex
	queue     []string
	armed     *RecognitionCallbacks
	exhausted bool
	readErr   error
}

// NewTerminalInput starts reading r. Prompts for the listener go to w.
// Every line is a final result, so only cfg.Language is used.
func NewTerminalInput(r io.Reader, w io.Writer, cfg RecognitionConfig) *TerminalInput {
	if cfg.Language == "" {
		cfg.Language = DefaultRecognitionConfig().Language
	}
	in := &TerminalInput{w: w, cfg: cfg, notify: make(chan struct{}, 1)}
	go in.read(r)
	return in
}

func (in *TerminalInput) read(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		in.mu.Lock()
		if line != "" {
			in.queue = append(in.queue, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			in.exhausted = true
			if !errors.Is(err, io.EOF) {
				in.readErr = err
			}
		}
		in.mu.Unlock()
		select {
		case in.notify <- struct{}{}:
		default:
		}
		in.dispatch()
		if err != nil {
			return
		}
	}
}

// dispatch fires the armed cycle if a line, or the end of input, is available.
func (in *TerminalInput) dispatch() {
	in.mu.Lock()
	cb := in.armed
	if cb == nil {
		in.mu.Unlock()
		return
	}
	switch {
	case len(in.queue) > 0:
		line := in.queue[0]
		in.queue = in.queue[1:]
		in.armed = nil
		in.mu.Unlock()
		if cb.OnResult != nil {
			cb.OnResult(line)
		}
		if cb.OnEnd != nil {
			cb.OnEnd()
		}
	case in.exhausted:
		in.armed = nil
		err := in.readErr
		in.mu.Unlock()
		if err == nil {
			err = ErrNoInput
		}
		if cb.OnError != nil {
			cb.OnError(err)
		}
		if cb.OnEnd != nil {
			cb.OnEnd()
		}
	default:
		in.mu.Unlock()
	}
}

// Start arms one recognition cycle. The next queued line fires OnResult
// then OnEnd.
func (in *TerminalInput) Start(cb RecognitionCallbacks) error {
	in.mu.Lock()
	if in.exhausted && len(in.queue) == 0 {
		in.mu.Unlock()
		return ErrNoInput
	}
	in.armed = &cb
	in.mu.Unlock()

	fmt.Fprintln(in.w, hintStyle.Render(fmt.Sprintf("(listening, %s... type your answer and press Enter)", in.cfg.Language)))
	in.dispatch()
	return nil
}

// Stop disarms the current cycle.
func (in *TerminalInput) Stop() {
	in.mu.Lock()
	cb := in.armed
	in.armed = nil
	in.mu.Unlock()
	if cb != nil && cb.OnEnd != nil {
		cb.OnEnd()
	}
}

// WaitLine blocks until the user enters a line and discards it. The CLI
// uses it as the manual "listen again" trigger after a failed cycle. It
// returns ErrNoInput once the input is used up.
func (in *TerminalInput) WaitLine(ctx context.Context) error {
	for {
		in.mu.Lock()
		if len(in.queue) > 0 {
			in.queue = in.queue[1:]
			in.mu.Unlock()
			return nil
		}
		if in.exhausted {
			in.mu.Unlock()
			return ErrNoInput
		}
		in.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-in.notify:
		}
	}
}

// Exhausted reports whether the input reached EOF with nothing left queued.
func (in *TerminalInput) Exhausted() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.exhausted && len(in.queue) == 0
}
