package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, dir string) []entity.FeedbackEntry {
	t.Helper()
	files, err := os.ReadDir(dir)
	require.NoError(t, err)

	var entries []entity.FeedbackEntry
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		require.NoError(t, err)
		var e entity.FeedbackEntry
		require.NoError(t, json.Unmarshal(data, &e))
		entries = append(entries, e)
	}
	return entries
}

func TestBlobFeedbackStore_CreatesBothNamespaces(t *testing.T) {
	root := t.TempDir()
	_, err := NewBlobFeedbackStore(root)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(root, "feedback", "ai"))
	assert.DirExists(t, filepath.Join(root, "feedback", "user"))
}

func TestBlobFeedbackStore_AIEntriesLandInAINamespace(t *testing.T) {
	root := t.TempDir()
	s, err := NewBlobFeedbackStore(root)
	require.NoError(t, err)

	entry := entity.FeedbackEntry{
		Question:  "Am I eligible?",
		Answer:    "Likely yes.",
		Sources:   []string{"gov.uk/skilled-worker"},
		AIScore:   7.5,
		AIReason:  "grounded",
		Timestamp: time.Now().UTC(),
		Language:  "en",
	}
	require.NoError(t, s.SaveAIFeedback(context.Background(), entry))

	entries := readEntries(t, filepath.Join(root, "feedback", "ai"))
	require.Len(t, entries, 1)
	assert.Equal(t, "Am I eligible?", entries[0].Question)
	assert.Equal(t, 7.5, entries[0].AIScore)
	assert.Nil(t, entries[0].UserRating)

	userFiles, err := os.ReadDir(filepath.Join(root, "feedback", "user"))
	require.NoError(t, err)
	assert.Empty(t, userFiles)
}

func TestBlobFeedbackStore_UserEntriesCarrySentinelScore(t *testing.T) {
	root := t.TempDir()
	s, err := NewBlobFeedbackStore(root)
	require.NoError(t, err)

	rating := 3
	entry := entity.FeedbackEntry{
		Question:   "Am I eligible?",
		Answer:     "Likely yes.",
		AIScore:    entity.UserFeedbackScore,
		AIReason:   "user_feedback",
		UserRating: &rating,
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, s.SaveUserFeedback(context.Background(), entry))

	entries := readEntries(t, filepath.Join(root, "feedback", "user"))
	require.Len(t, entries, 1)
	assert.Equal(t, float64(entity.UserFeedbackScore), entries[0].AIScore)
	require.NotNil(t, entries[0].UserRating)
	assert.Equal(t, 3, *entries[0].UserRating)
}

func TestBlobFeedbackStore_WritesNeverCollide(t *testing.T) {
	root := t.TempDir()
	s, err := NewBlobFeedbackStore(root)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.SaveAIFeedback(context.Background(), entity.FeedbackEntry{
			Question:  "q",
			Answer:    "a",
			Timestamp: time.Now().UTC(),
		}))
	}

	files, err := os.ReadDir(filepath.Join(root, "feedback", "ai"))
	require.NoError(t, err)
	assert.Len(t, files, 10)
}
