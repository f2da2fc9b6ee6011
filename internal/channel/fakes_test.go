package channel

import (
	"sync"
	"time"
)

type fakeInput struct {
	mu     sync.Mutex
	starts int
	stops  int
	cb     RecognitionCallbacks
	err    error
}

func (f *fakeInput) Start(cb RecognitionCallbacks) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.starts++
	f.cb = cb
	return nil
}

func (f *fakeInput) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeInput) callbacks() RecognitionCallbacks {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cb
}

// say delivers a final transcript followed by the end event.
func (f *fakeInput) say(text string) {
	cb := f.callbacks()
	cb.OnResult(text)
	cb.OnEnd()
}

func (f *fakeInput) fail(err error) {
	cb := f.callbacks()
	cb.OnError(err)
	cb.OnEnd()
}

func (f *fakeInput) end() {
	f.callbacks().OnEnd()
}

type fakeOutput struct {
	mu      sync.Mutex
	spoken  []Utterance
	cancels int
	cb      SynthesisCallbacks
}

func (f *fakeOutput) Speak(u Utterance, cb SynthesisCallbacks) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, u)
	f.cb = cb
	f.mu.Unlock()
	if cb.OnStart != nil {
		cb.OnStart()
	}
	return nil
}

func (f *fakeOutput) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
}

// finish reports the end of the last utterance.
func (f *fakeOutput) finish() {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	cb.OnEnd()
}

func (f *fakeOutput) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.spoken) == 0 {
		return ""
	}
	return f.spoken[len(f.spoken)-1].Text
}

func (f *fakeOutput) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}

// manualScheduler fires timers only when the test asks it to.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, d: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// next pops the earliest live timer.
func (s *manualScheduler) next() *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		if !t.stopped {
			t.stopped = true
			return t
		}
	}
	return nil
}

// flush fires timers until none are pending and returns the delays fired.
func (s *manualScheduler) flush() []time.Duration {
	var fired []time.Duration
	for t := s.next(); t != nil; t = s.next() {
		fired = append(fired, t.d)
		t.f()
	}
	return fired
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
