// Package channel feeds answers into an interview engine, either from typed
// text or from an injected speech capability pair.
package channel

import "time"

// RecognitionConfig configures a speech-to-text capability for one utterance.
type RecognitionConfig struct {
	Continuous     bool
	InterimResults bool
	Language       string
}

// DefaultRecognitionConfig is single-utterance, final results only, en-US.
func DefaultRecognitionConfig() RecognitionConfig {
	return RecognitionConfig{Language: "en-US"}
}

// RecognitionCallbacks receive the outcome of one listening cycle. Each
// cycle fires OnResult or OnError at most once, usually followed by OnEnd.
type RecognitionCallbacks struct {
	OnResult func(text string)
	OnError  func(err error)
	OnEnd    func()
}

// SpeechInput is a speech-to-text capability.
type SpeechInput interface {
	Start(cb RecognitionCallbacks) error
	Stop()
}

// Utterance is one piece of synthesized speech.
type Utterance struct {
	Text   string
	Rate   float64
	Pitch  float64
	Volume float64
}

// SynthesisCallbacks receive the lifecycle of one utterance. OnEnd is not
// required to fire after Cancel.
type SynthesisCallbacks struct {
	OnStart func()
	OnEnd   func()
}

// SpeechOutput is a text-to-speech capability.
type SpeechOutput interface {
	Speak(u Utterance, cb SynthesisCallbacks) error
	Cancel()
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The voice channel uses it for its pacing delays.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules on the runtime timer.
func RealScheduler() Scheduler { return realScheduler{} }
