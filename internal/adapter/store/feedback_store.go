package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"

	"github.com/google/uuid"
)

// BlobFeedbackStore persists feedback records as individual JSON blobs under
// two namespaces, feedback/ai and feedback/user. Names carry a timestamp
// plus a random suffix so concurrent writes never collide; nothing ever
// overwrites or deletes an entry.
type BlobFeedbackStore struct {
	root string
}

// NewBlobFeedbackStore creates both namespaces under root up front so the
// write path never has to probe for them.
func NewBlobFeedbackStore(root string) (*BlobFeedbackStore, error) {
	for _, ns := range []string{"ai", "user"} {
		if err := os.MkdirAll(filepath.Join(root, "feedback", ns), 0o755); err != nil {
			return nil, fmt.Errorf("creating feedback namespace %s: %w", ns, err)
		}
	}
	return &BlobFeedbackStore{root: root}, nil
}

func (s *BlobFeedbackStore) SaveAIFeedback(ctx context.Context, entry entity.FeedbackEntry) error {
	return s.write("ai", entry)
}

func (s *BlobFeedbackStore) SaveUserFeedback(ctx context.Context, entry entity.FeedbackEntry) error {
	return s.write("user", entry)
}

func (s *BlobFeedbackStore) write(namespace string, entry entity.FeedbackEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling feedback entry: %w", err)
	}

	name := fmt.Sprintf("%d-%s.json", time.Now().UnixMilli(), uuid.NewString())
	path := filepath.Join(s.root, "feedback", namespace, name)

	// O_EXCL enforces append-only: a name collision fails instead of
	// clobbering an existing record.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating feedback blob: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing feedback blob: %w", err)
	}
	return nil
}
