package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khrees2412/tradecv/internal/interview"
	"github.com/khrees2412/tradecv/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatAnswers = `Jane Doe
Backend Engineer

jane@example.com
555-0100
Austin, TX
Go
SQL
Kubernetes
`

func newChatEngine(t *testing.T) *interview.Engine {
	t.Helper()
	catalog, err := interview.LookupCatalog(interview.CatalogChat)
	require.NoError(t, err)
	return interview.New(catalog)
}

func TestRunTextInterview_Complete(t *testing.T) {
	engine := newChatEngine(t)
	var out bytes.Buffer

	err := runTextInterview(context.Background(), engine, strings.NewReader(chatAnswers), &out)
	require.NoError(t, err)

	state := engine.State()
	assert.True(t, state.Complete)
	assert.Equal(t, 100, state.Progress)

	rec := engine.Record()
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "Backend Engineer", rec.Title)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, rec.Skills)

	text := out.String()
	assert.Contains(t, text, "What's your full name?")
	assert.Contains(t, text, "Skill 3?")
	assert.Contains(t, text, "Awesome! Resume basics are done.")
	assert.Contains(t, text, "100% Complete")
}

func TestRunTextInterview_BlankLinesAreIgnored(t *testing.T) {
	engine := newChatEngine(t)
	var out bytes.Buffer

	err := runTextInterview(context.Background(), engine, strings.NewReader("\n   \nJane Doe\n"), &out)
	require.NoError(t, err)

	state := engine.State()
	assert.False(t, state.Complete)
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, "Jane Doe", engine.Record().Name)
	assert.Len(t, engine.Transcript(), 3)
}

func TestRunTextInterview_StopsAtEOF(t *testing.T) {
	engine := newChatEngine(t)
	var out bytes.Buffer

	err := runTextInterview(context.Background(), engine, strings.NewReader("Jane Doe\nBackend Engineer"), &out)
	require.NoError(t, err)

	state := engine.State()
	assert.False(t, state.Complete)
	assert.Equal(t, 2, state.CurrentIndex)
	prompt, ok := engine.CurrentPrompt()
	assert.True(t, ok)
	assert.Equal(t, "Your email address?", prompt)
}

func TestRunTextInterview_Cancelled(t *testing.T) {
	engine := newChatEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pipe that never delivers a line; only the cancelled context can end the loop.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer
	require.NoError(t, runTextInterview(ctx, engine, r, &out))
	assert.Equal(t, 0, engine.State().CurrentIndex)
}

func TestReadLines_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("Jane Doe\nElectrician\nAustin, TX\n"))

	assert.Equal(t, "Jane Doe", <-lines)
	cancel()

	// With nobody receiving, the goroutine must give up on the pending
	// line and close the channel instead of blocking on the send.
	time.Sleep(100 * time.Millisecond)
	select {
	case line, ok := <-lines:
		assert.False(t, ok, "got %q after cancel", line)
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine still running after cancel")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{20, 4},
		{50, 10},
		{100, 20},
	}
	for _, tt := range tests {
		bar := progressBar(tt.percent)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "percent %d", tt.percent)
		assert.Equal(t, 20-tt.filled, strings.Count(bar, "░"), "percent %d", tt.percent)
	}
	assert.Contains(t, progressBar(60), "60% Complete")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1d", shortID("3f2a9c1d-0000-4000-8000-000000000000"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestInterviewCommand_WritesDocuments(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(chatAnswers))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"interview", "--config-dir", dir, "--format", "json", "--out", outDir})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Session saved as")

	data, err := os.ReadFile(filepath.Join(outDir, "Jane_Doe_Resume.json"))
	require.NoError(t, err)
	rec, err := schemas.DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", rec.Email)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, rec.Skills)
}
