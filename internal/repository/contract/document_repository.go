package contract

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdatePathPrefix rewrites the paths of all documents under oldPrefix
	// so they live under newPrefix instead. Used when a folder moves.
	UpdatePathPrefix(ctx context.Context, userId uint, oldPrefix, newPrefix string) (int64, error)

	// DeleteUnderPath soft-deletes every document beneath a folder path.
	DeleteUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)

	// RestoreUnderPath reverses DeleteUnderPath.
	RestoreUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)
}
