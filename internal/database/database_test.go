package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/tradecv/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

// createTestDB creates a temporary test database
func createTestDB(t testing.TB) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func newTestRepo(t testing.TB) *Repository {
	return NewRepository(createTestDB(t))
}

func newSession(name string) *models.Session {
	rec := models.NewResumeRecord(3)
	rec.Name = name
	rec.Skills[0] = "Wiring"
	return &models.Session{
		Catalog: "chat",
		Record:  rec,
		Transcript: []models.TranscriptEntry{
			{Speaker: models.SpeakerAI, Text: "What's your full name?"},
			{Speaker: models.SpeakerUser, Text: name},
		},
		Progress: 25,
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tradecv.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Migrations are idempotent
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("Jane Doe")
	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if s.ID == "" {
		t.Fatal("session ID not set after creation")
	}
	if s.CreatedAt.IsZero() {
		t.Error("created_at not set after creation")
	}

	got, err := repo.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if got.Record.Name != "Jane Doe" || got.Catalog != "chat" || got.Progress != 25 {
		t.Errorf("retrieved session doesn't match: %+v", got)
	}
	if len(got.Record.Skills) != 3 || got.Record.Skills[0] != "Wiring" {
		t.Errorf("skills not round-tripped: %v", got.Record.Skills)
	}
	if len(got.Transcript) != 2 || got.Transcript[1].Speaker != models.SpeakerUser {
		t.Errorf("transcript not round-tripped: %+v", got.Transcript)
	}
	if got.CompletedAt != nil {
		t.Error("unfinished session should have no completion time")
	}
	if !got.CreatedAt.Equal(s.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, s.CreatedAt)
	}
}

func TestGetSessionByPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newSession("A")
	a.ID = "abc-111"
	b := newSession("B")
	b.ID = "abd-222"
	for _, s := range []*models.Session{a, b} {
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}

	got, err := repo.GetSession(ctx, "abc")
	if err != nil {
		t.Fatalf("prefix lookup failed: %v", err)
	}
	if got.ID != "abc-111" {
		t.Errorf("got %s, want abc-111", got.ID)
	}

	if _, err := repo.GetSession(ctx, "ab"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("expected ErrAmbiguousID, got %v", err)
	}
	if _, err := repo.GetSession(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetSession(ctx, "a%"); !IsNotFound(err) {
		t.Errorf("wildcards must not match, got %v", err)
	}
}

func TestUpdateSession(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("Jane Doe")
	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	done := time.Now().UTC()
	s.Record.Title = "Electrician"
	s.Progress = 100
	s.Complete = true
	s.CompletedAt = &done
	if err := repo.UpdateSession(ctx, s); err != nil {
		t.Fatalf("failed to update session: %v", err)
	}

	got, err := repo.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if !got.Complete || got.Progress != 100 || got.Record.Title != "Electrician" {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, done)
	}

	missing := newSession("Nobody")
	missing.ID = "missing"
	if err := repo.UpdateSession(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		s := newSession(fmt.Sprintf("Worker %d", i))
		s.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("failed to create session %d: %v", i, err)
		}
	}

	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].Record.Name != "Worker 3" {
		t.Errorf("expected newest first, got %s", sessions[0].Record.Name)
	}
}

// TestDeleteSessionCascade tests that exports are deleted with their session
func TestDeleteSessionCascade(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("Jane Doe")
	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	export := &models.Export{SessionID: s.ID, Format: "html", FilePath: "/tmp/Jane_Doe_Resume.html"}
	if err := repo.CreateExport(ctx, export); err != nil {
		t.Fatalf("failed to record export: %v", err)
	}
	if export.ID == 0 {
		t.Error("export ID not set")
	}

	exports, err := repo.GetSessionExports(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to list exports: %v", err)
	}
	if len(exports) != 1 || exports[0].Format != "html" {
		t.Fatalf("unexpected exports: %+v", exports)
	}

	if err := repo.DeleteSession(ctx, s.ID); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}
	if _, err := repo.GetSession(ctx, s.ID); !IsNotFound(err) {
		t.Errorf("session should be gone, got %v", err)
	}

	exports, err = repo.GetSessionExports(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to list exports: %v", err)
	}
	if len(exports) != 0 {
		t.Error("exports should be deleted when session is deleted")
	}

	if err := repo.DeleteSession(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

// TestForeignKeyConstraint verifies foreign keys are enabled
func TestForeignKeyConstraint(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.CreateExport(context.Background(), &models.Export{SessionID: "nope", Format: "pdf", FilePath: "x.pdf"})
	if err == nil {
		t.Error("should have failed due to foreign key constraint")
	}
}

func TestExportFormatConstraint(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newSession("Jane Doe")
	if err := repo.CreateSession(ctx, s); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := repo.CreateExport(ctx, &models.Export{SessionID: s.ID, Format: "docx", FilePath: "x.docx"}); err == nil {
		t.Error("should have rejected unknown format")
	}
}

// BenchmarkCreateSession benchmarks session creation
func BenchmarkCreateSession(b *testing.B) {
	repo := newTestRepo(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := repo.CreateSession(ctx, newSession(fmt.Sprintf("Worker %d", i))); err != nil {
			b.Fatal(err)
		}
	}
}
