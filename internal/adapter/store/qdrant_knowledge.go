package store

import (
	"context"
	"fmt"

	"github.com/DavidBolaji/rag-project/internal/domain/repository"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QdrantKnowledge is the retrieval index behind the answer engine. The
// corpus (immigration guidance documents, chunked and embedded) is loaded
// out-of-band; the serving path only searches it.
type QdrantKnowledge struct {
	client         *qdrant.Client
	collectionName string
}

func NewQdrantKnowledge(client *qdrant.Client, collectionName string) *QdrantKnowledge {
	return &QdrantKnowledge{
		client:         client,
		collectionName: collectionName,
	}
}

func (s *QdrantKnowledge) InitCollection(ctx context.Context, dim uint64) error {
	_, err := s.client.GetCollectionInfo(ctx, s.collectionName)
	if err != nil {
		st, ok := status.FromError(err)
		if ok && st.Code() == codes.NotFound {
			err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
				CollectionName: s.collectionName,
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     dim,
					Distance: qdrant.Distance_Cosine,
				}),
			})
			if err != nil {
				return fmt.Errorf("failed to create collection: %w", err)
			}
			return nil
		}
		return err
	}
	return nil
}

// Search returns the passages most relevant to the query vector, ordered by
// similarity score. The orchestrator preserves this order all the way to the
// caller-visible source list.
func (s *QdrantKnowledge) Search(ctx context.Context, vector []float32, limit uint64) ([]repository.Passage, error) {
	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge base query failed: %w", err)
	}

	passages := make([]repository.Passage, 0, len(res))
	for _, hit := range res {
		payload := hit.Payload
		passages = append(passages, repository.Passage{
			Text:   payload["text"].GetStringValue(),
			Source: payload["source"].GetStringValue(),
			Score:  hit.Score,
		})
	}
	return passages, nil
}
