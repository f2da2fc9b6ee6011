package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.FileExists(t, Path(dir))
	assert.Equal(t, "chat", cfg.Catalog)
	assert.Equal(t, []string{"html"}, cfg.Formats)
	assert.Equal(t, filepath.Join(dir, "resumes"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "tradecv.db"), cfg.DatabasePath)
	assert.Equal(t, "en-US", cfg.Voice.Language)
	assert.InDelta(t, 0.9, cfg.Voice.Rate, 1e-9)
	assert.Equal(t, 500*time.Millisecond, cfg.Voice.ListenDelay)
	assert.Equal(t, time.Second, cfg.Voice.ProcessingDelay)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)

	info, err := os.Stat(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADECV_CATALOG", "voice")
	t.Setenv("TRADECV_VOICE_PROCESSING_DELAY", "2s")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "voice", cfg.Catalog)
	assert.Equal(t, 2*time.Second, cfg.Voice.ProcessingDelay)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("catalog: radio\n"), 0600))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSet(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Set(dir, "catalog", "voice"))
	require.NoError(t, Set(dir, "formats", "html,pdf"))
	require.NoError(t, Set(dir, "voice.rate", "1.2"))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "voice", cfg.Catalog)
	assert.Equal(t, []string{"html", "pdf"}, cfg.Formats)
	assert.InDelta(t, 1.2, cfg.Voice.Rate, 1e-9)
}

func TestSet_Rejects(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.NoError(t, err)
	before, err := os.ReadFile(Path(dir))
	require.NoError(t, err)

	assert.ErrorIs(t, Set(dir, "theme", "dark"), ErrUnknownKey)
	assert.ErrorIs(t, Set(dir, "catalog", "radio"), ErrInvalidConfig)
	assert.ErrorIs(t, Set(dir, "formats", "docx"), ErrInvalidConfig)

	after, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "catalog")
	assert.Contains(t, keys, "voice.listen_delay")
	assert.Contains(t, keys, "output_dir")
	assert.True(t, IsKey("pdf.timeout"))
	assert.False(t, IsKey("openai_key"))
}
