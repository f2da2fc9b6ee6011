package channel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/khrees2412/tradecv/internal/interview"
	"github.com/khrees2412/tradecv/internal/logger"
)

// VoiceState is the voice channel's position in its speak/listen cycle.
type VoiceState int

const (
	VoiceIdle VoiceState = iota
	VoiceSpeaking
	VoiceListening
	VoiceProcessing
	VoiceComplete
	VoiceClosed
)

func (s VoiceState) String() string {
	switch s {
	case VoiceIdle:
		return "idle"
	case VoiceSpeaking:
		return "speaking"
	case VoiceListening:
		return "listening"
	case VoiceProcessing:
		return "processing"
	case VoiceComplete:
		return "complete"
	case VoiceClosed:
		return "closed"
	default:
		return fmt.Sprintf("VoiceState(%d)", int(s))
	}
}

// Default pacing between the channel's steps
const (
	DefaultStartDelay      = 500 * time.Millisecond
	DefaultListenDelay     = 500 * time.Millisecond
	DefaultProcessingDelay = time.Second
)

// ErrNotIdle is returned when listening is requested outside the idle state.
var ErrNotIdle = errors.New("voice channel is not idle")

// VoiceOption configures a Voice channel
type VoiceOption func(*Voice)

// WithScheduler replaces the runtime timer.
func WithScheduler(s Scheduler) VoiceOption {
	return func(v *Voice) { v.sched = s }
}

// WithDelays sets the start, listen and processing delays.
func WithDelays(start, listen, processing time.Duration) VoiceOption {
	return func(v *Voice) {
		v.startDelay = start
		v.listenDelay = listen
		v.processingDelay = processing
	}
}

// WithVoice sets the synthesis rate, pitch and volume.
func WithVoice(rate, pitch, volume float64) VoiceOption {
	return func(v *Voice) {
		v.rate = rate
		v.pitch = pitch
		v.volume = volume
	}
}

// WithLogger sets the logger used for recognition diagnostics.
func WithLogger(l *logger.Logger) VoiceOption {
	return func(v *Voice) { v.log = l }
}

// OnStateChange registers an observer called after every transition,
// outside the channel's lock.
func OnStateChange(fn func(VoiceState)) VoiceOption {
	return func(v *Voice) { v.observers = append(v.observers, fn) }
}

type effect func()

// Voice drives an interview by speech: speak prompt, listen, submit the
// transcript, speak the next prompt. Callbacks from the capabilities may
// arrive on any goroutine. Each cycle is tagged with an epoch, and
// callbacks from an older epoch, or any callback after Close, are dropped.
type Voice struct {
	mu     sync.Mutex
	engine *interview.Engine
	in     SpeechInput
	out    SpeechOutput
	sched  Scheduler
	log    *logger.Logger

	startDelay      time.Duration
	listenDelay     time.Duration
	processingDelay time.Duration
	rate            float64
	pitch           float64
	volume          float64

	state     VoiceState
	epoch     uint64
	started   bool
	awaiting  bool // a recognition cycle may still deliver a result
	timers    []Timer
	done      chan struct{}
	observers []func(VoiceState)
}

// NewVoice builds a voice channel over engine. Nothing happens until Start.
func NewVoice(engine *interview.Engine, in SpeechInput, out SpeechOutput, opts ...VoiceOption) *Voice {
	v := &Voice{
		engine:          engine,
		in:              in,
		out:             out,
		sched:           RealScheduler(),
		log:             logger.Nop(),
		startDelay:      DefaultStartDelay,
		listenDelay:     DefaultListenDelay,
		processingDelay: DefaultProcessingDelay,
		rate:            0.9,
		pitch:           1,
		volume:          1,
		state:           VoiceIdle,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Start speaks the current prompt after the start delay. Calling Start
// more than once has no effect.
func (v *Voice) Start() {
	v.mu.Lock()
	if v.started || v.state == VoiceClosed {
		v.mu.Unlock()
		return
	}
	v.started = true
	effects := v.scheduleLocked(v.startDelay, func() []effect {
		if v.state != VoiceIdle {
			return nil
		}
		if prompt, ok := v.engine.CurrentPrompt(); ok {
			return v.speakLocked(prompt, false)
		}
		return v.speakLocked(v.engine.Catalog().ClosingMessage(), true)
	})
	v.mu.Unlock()
	run(effects)
}

// StartListening re-arms recognition after an error or a blank answer.
// It is only allowed while idle; speaking disables it.
func (v *Voice) StartListening() error {
	v.mu.Lock()
	if v.state != VoiceIdle || !v.started {
		v.mu.Unlock()
		return ErrNotIdle
	}
	effects := v.listenLocked()
	v.mu.Unlock()
	run(effects)
	return nil
}

// StopListening ends capture early. A transcript the recognizer still
// delivers for this cycle is processed; if none arrives the channel goes idle.
func (v *Voice) StopListening() {
	v.mu.Lock()
	if v.state != VoiceListening {
		v.mu.Unlock()
		return
	}
	effects := v.setStateLocked(VoiceProcessing)
	v.mu.Unlock()

	v.in.Stop()
	run(effects)
}

// Close cancels synthesis and recognition and drops every later callback.
// It is safe to call more than once.
func (v *Voice) Close() {
	v.mu.Lock()
	if v.state == VoiceClosed {
		v.mu.Unlock()
		return
	}
	v.epoch++
	v.awaiting = false
	timers := v.timers
	v.timers = nil
	effects := v.setStateLocked(VoiceClosed)
	v.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	v.in.Stop()
	v.out.Cancel()
	run(effects)
}

// State returns the current state.
func (v *Voice) State() VoiceState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Done is closed once the interview completes or the channel is closed.
func (v *Voice) Done() <-chan struct{} {
	return v.done
}

// Engine returns the engine this channel feeds.
func (v *Voice) Engine() *interview.Engine { return v.engine }

// guarded runs step under the lock if ep is still current, then runs the
// effects it returned outside the lock.
func (v *Voice) guarded(ep uint64, step func() []effect) {
	v.mu.Lock()
	if v.epoch != ep || v.state == VoiceClosed {
		v.mu.Unlock()
		return
	}
	effects := step()
	v.mu.Unlock()
	run(effects)
}

func (v *Voice) setStateLocked(s VoiceState) []effect {
	if v.state == s {
		return nil
	}
	v.state = s
	if s == VoiceComplete || s == VoiceClosed {
		select {
		case <-v.done:
		default:
			close(v.done)
		}
	}
	observers := v.observers
	return []effect{func() {
		for _, fn := range observers {
			fn(s)
		}
	}}
}

func (v *Voice) scheduleLocked(d time.Duration, step func() []effect) []effect {
	ep := v.epoch
	return []effect{func() {
		t := v.sched.AfterFunc(d, func() { v.guarded(ep, step) })
		v.mu.Lock()
		if v.state == VoiceClosed {
			v.mu.Unlock()
			t.Stop()
			return
		}
		v.timers = append(v.timers, t)
		v.mu.Unlock()
	}}
}

func (v *Voice) speakLocked(text string, final bool) []effect {
	v.epoch++
	ep := v.epoch
	effects := v.setStateLocked(VoiceSpeaking)

	u := Utterance{Text: text, Rate: v.rate, Pitch: v.pitch, Volume: v.volume}
	cb := SynthesisCallbacks{
		OnEnd: func() {
			v.guarded(ep, func() []effect { return v.speechEndedLocked(final) })
		},
	}
	return append(effects, func() {
		v.out.Cancel()
		if err := v.out.Speak(u, cb); err != nil {
			v.guarded(ep, func() []effect {
				v.log.Warn("speech synthesis failed", "error", err)
				return v.speechEndedLocked(final)
			})
		}
	})
}

func (v *Voice) speechEndedLocked(final bool) []effect {
	if v.state != VoiceSpeaking {
		return nil
	}
	if final {
		return v.setStateLocked(VoiceComplete)
	}
	return v.scheduleLocked(v.listenDelay, func() []effect {
		if v.state != VoiceSpeaking {
			return nil
		}
		return v.listenLocked()
	})
}

func (v *Voice) listenLocked() []effect {
	v.epoch++
	ep := v.epoch
	v.awaiting = true
	effects := v.setStateLocked(VoiceListening)

	cb := RecognitionCallbacks{
		OnResult: func(text string) {
			v.guarded(ep, func() []effect { return v.resultLocked(text) })
		},
		OnError: func(err error) {
			v.guarded(ep, func() []effect { return v.failLocked(err) })
		},
		OnEnd: func() {
			v.guarded(ep, v.endLocked)
		},
	}
	return append(effects, func() {
		if err := v.in.Start(cb); err != nil {
			v.guarded(ep, func() []effect { return v.failLocked(err) })
		}
	})
}

func (v *Voice) resultLocked(text string) []effect {
	if !v.awaiting {
		return nil
	}
	v.awaiting = false

	res, err := v.engine.SubmitAnswer(text)
	if err != nil {
		v.log.Debug("answer rejected", "error", err)
		return v.setStateLocked(VoiceIdle)
	}

	effects := v.setStateLocked(VoiceProcessing)
	return append(effects, v.scheduleLocked(v.processingDelay, func() []effect {
		if v.state != VoiceProcessing {
			return nil
		}
		if res.State.Complete {
			return v.speakLocked(v.engine.Catalog().ClosingMessage(), true)
		}
		return v.speakLocked(res.NextPrompt, false)
	})...)
}

func (v *Voice) failLocked(err error) []effect {
	v.log.Warn("speech recognition failed", "error", err, "state", v.state.String())
	if !v.awaiting {
		return nil
	}
	v.awaiting = false
	return v.setStateLocked(VoiceIdle)
}

func (v *Voice) endLocked() []effect {
	if !v.awaiting {
		return nil
	}
	v.awaiting = false
	return v.setStateLocked(VoiceIdle)
}

func run(effects []effect) {
	for _, e := range effects {
		e()
	}
}
