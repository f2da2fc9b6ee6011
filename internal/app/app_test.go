package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	dir := t.TempDir()

	a, err := NewApp(context.Background(), dir)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, dir, a.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "tradecv.db"), a.Config.DatabasePath)
	assert.NotNil(t, a.Sessions)

	sessions, err := a.Sessions.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)

	opts := a.RenderOptions()
	assert.Equal(t, a.Config.PDF.Timeout, opts.PDFTimeout)
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	a := &App{ConfigDir: "x"}
	got, err := FromContext(WithApp(context.Background(), a))
	require.NoError(t, err)
	assert.Same(t, a, got)
}
