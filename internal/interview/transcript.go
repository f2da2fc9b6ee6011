package interview

import "github.com/khrees2412/tradecv/pkg/models"

// Transcript is the append-only conversation log. It is observational only;
// the engine writes to it and never reads it back.
type Transcript struct {
	entries []models.TranscriptEntry
}

func (t *Transcript) append(speaker models.Speaker, text string) {
	t.entries = append(t.entries, models.TranscriptEntry{Speaker: speaker, Text: text})
}

// Len returns the number of entries.
func (t *Transcript) Len() int { return len(t.entries) }

// Entries returns a copy of the log.
func (t *Transcript) Entries() []models.TranscriptEntry {
	return append([]models.TranscriptEntry{}, t.entries...)
}
