package channel

import (
	"strings"

	"github.com/khrees2412/tradecv/internal/interview"
)

// Text is the typed-answer channel. It buffers the current input and
// forwards it to the engine on Enter.
type Text struct {
	engine *interview.Engine
	input  string
}

// NewText returns a text channel over engine with an empty input buffer.
func NewText(engine *interview.Engine) *Text {
	return &Text{engine: engine}
}

func (t *Text) SetInput(s string) { t.input = s }

func (t *Text) Input() string { return t.input }

// Submit forwards the buffered input when it is not blank, then clears the
// buffer. It reports false when nothing was forwarded or the engine refused
// the answer; the record is unchanged in that case.
func (t *Text) Submit() (interview.Result, bool) {
	raw := t.input
	t.input = ""
	if strings.TrimSpace(raw) == "" {
		return interview.Result{}, false
	}
	res, err := t.engine.SubmitAnswer(raw)
	if err != nil {
		return interview.Result{}, false
	}
	return res, true
}

// HandleKey submits on Enter. Any other key is ignored.
func (t *Text) HandleKey(key string) (interview.Result, bool) {
	if key != "Enter" {
		return interview.Result{}, false
	}
	return t.Submit()
}

// Engine returns the engine this channel feeds.
func (t *Text) Engine() *interview.Engine { return t.engine }
