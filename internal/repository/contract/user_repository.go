package contract

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindById(ctx context.Context, id uint) (*entity.User, error)
}
