package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpenFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "llm_request_events", name)
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"problem", "hint", "check"}
	for i, p := range purposes {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.0-flash",
			Purpose:      p,
			InputTokens:  100 + i,
			OutputTokens: 20,
			LatencyMs:    int64(300 + i),
			Success:      true,
			RequestBody:  "[user]\nprompt " + p,
			ResponseBody: "reply " + p,
		})
		require.NoError(t, err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, "check", events[0].Purpose)
	assert.Equal(t, "problem", events[2].Purpose)
	assert.True(t, events[0].Success)
	assert.Equal(t, "reply check", events[0].ResponseBody)
	assert.False(t, events[0].Timestamp.IsZero())

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	hints, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "hint"})
	require.NoError(t, err)
	require.Len(t, hints, 1)
	assert.Equal(t, 101, hints[0].InputTokens)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[2].ID})
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestQueryLLMEventsTimeWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.events
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		repo.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "problem", Success: true,
		}))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{
		From: base.Add(30 * time.Minute),
		To:   base.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Timestamp.Equal(base.Add(time.Hour)))
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "explain",
		Success:      false,
		ErrorMessage: "provider unavailable",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "explain", got.Purpose)
	assert.False(t, got.Success)
	assert.Equal(t, "provider unavailable", got.ErrorMessage)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "check", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "check", InputTokens: 120, OutputTokens: 30, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", InputTokens: 80, OutputTokens: 10, LatencyMs: 100, Success: true},
	}
	for _, r := range rows {
		require.NoError(t, repo.AppendLLMRequest(ctx, r))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "check", Calls: 2, InputTokens: 220, OutputTokens: 80, AvgLatencyMs: 300}, byPurpose[0])
	assert.Equal(t, "hint", byPurpose[1].Purpose)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gemini-2.0-flash", Calls: 2, InputTokens: 220, OutputTokens: 80}, byModel[0])
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 1, InputTokens: 80, OutputTokens: 10}, byModel[1])
}

func TestConfiguredDBPath(t *testing.T) {
	t.Setenv(EnvDBPath, "")

	p, err := ConfiguredDBPath("")
	require.NoError(t, err)
	assert.Empty(t, p, "no flag and no env means no event log")

	envPath := filepath.Join(t.TempDir(), "env", "events.db")
	t.Setenv(EnvDBPath, envPath)
	p, err = ConfiguredDBPath("")
	require.NoError(t, err)
	assert.Equal(t, envPath, p)

	flagPath := filepath.Join(t.TempDir(), "flag.db")
	p, err = ConfiguredDBPath(flagPath)
	require.NoError(t, err)
	assert.Equal(t, flagPath, p)
}

func TestDefaultDBPathUsesXDG(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "mathbuddy", "events.db"), p)
}
