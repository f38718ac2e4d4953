package contract

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) error
	Update(ctx context.Context, folder *entity.Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdatePathPrefix rewrites the paths of all folders under oldPrefix
	// so they live under newPrefix instead.
	UpdatePathPrefix(ctx context.Context, userId uint, oldPrefix, newPrefix string) (int64, error)

	// DeleteUnderPath soft-deletes every folder beneath a folder path.
	DeleteUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)

	// RestoreUnderPath reverses DeleteUnderPath.
	RestoreUnderPath(ctx context.Context, userId uint, prefix string) (int64, error)
}
