package contract

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/pkg/retrieval"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	RestoreByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeleteUnderPath soft-deletes the chunks of every document beneath
	// a folder path. Runs before the documents themselves are deleted.
	DeleteUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)

	// RestoreUnderPath reverses DeleteUnderPath.
	RestoreUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)

	// CloneByDocumentId copies every chunk of srcDocumentId onto
	// dstDocumentId, embeddings included, so a copied document stays
	// searchable without re-embedding.
	CloneByDocumentId(ctx context.Context, srcDocumentId, dstDocumentId uuid.UUID) error

	// TopCandidates satisfies retrieval.CandidateSource.
	TopCandidates(ctx context.Context, queryVec []float32, limit int, userId uint) ([]retrieval.Candidate, error)
}
