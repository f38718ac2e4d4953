package unitofwork

import (
	"context"

	"ai-filepilot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FolderRepository() contract.FolderRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	OperationLogRepository() contract.OperationLogRepository
}
