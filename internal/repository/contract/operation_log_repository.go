package contract

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
)

type OperationLogRepository interface {
	Create(ctx context.Context, log *entity.OperationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OperationLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
