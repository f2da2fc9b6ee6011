package interview

import (
	"strings"
	"sync"

	"github.com/khrees2412/tradecv/pkg/models"
)

// State is the engine's position in the catalog.
type State struct {
	CurrentIndex int  `json:"current_index"`
	Progress     int  `json:"progress"`
	Complete     bool `json:"complete"`
}

// Result is returned from a successful SubmitAnswer. NextPrompt is empty
// when the interview completed with this answer.
type Result struct {
	Record     models.ResumeRecord
	State      State
	NextPrompt string
}

// Engine walks a catalog and applies answers to a resume record. It owns
// the record, the state and the transcript for one session. Calls are
// serialized, so each answer targets the question current at call time.
type Engine struct {
	mu         sync.Mutex
	catalog    *Catalog
	record     models.ResumeRecord
	state      State
	transcript Transcript
}

// New starts an interview on the catalog. The first prompt is already in
// the transcript when New returns.
func New(catalog *Catalog) *Engine {
	e := &Engine{
		catalog: catalog,
		record:  models.NewResumeRecord(catalog.SkillSlots()),
	}
	e.transcript.append(models.SpeakerAI, catalog.At(0).Prompt)
	return e
}

// SubmitAnswer applies raw to the current question. Blank answers return
// ErrBlankAnswer and answers after completion return ErrInterviewComplete;
// neither changes any state.
func (e *Engine) SubmitAnswer(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrBlankAnswer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Complete {
		return Result{}, ErrInterviewComplete
	}

	q := e.catalog.At(e.state.CurrentIndex)
	e.record = apply(e.record, q, raw)
	e.transcript.append(models.SpeakerUser, raw)

	if p := e.catalog.Progress(e.record); p > e.state.Progress {
		e.state.Progress = p
	}

	e.state.CurrentIndex++

	var next string
	if e.state.CurrentIndex < e.catalog.Len() {
		next = e.catalog.At(e.state.CurrentIndex).Prompt
		e.transcript.append(models.SpeakerAI, next)
	} else {
		e.state.Complete = true
		if e.catalog.pinOnComplete {
			e.state.Progress = 100
		}
		e.transcript.append(models.SpeakerAI, e.catalog.ClosingMessage())
	}

	return Result{
		Record:     e.record.Clone(),
		State:      e.state,
		NextPrompt: next,
	}, nil
}

// CurrentPrompt returns the prompt awaiting an answer, or false when complete.
func (e *Engine) CurrentPrompt() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Complete {
		return "", false
	}
	return e.catalog.At(e.state.CurrentIndex).Prompt, true
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Record returns a snapshot of the record that is safe to render.
func (e *Engine) Record() models.ResumeRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record.Clone()
}

// Transcript returns a copy of the conversation so far.
func (e *Engine) Transcript() []models.TranscriptEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transcript.Entries()
}

// Catalog returns the catalog driving this interview.
func (e *Engine) Catalog() *Catalog { return e.catalog }
