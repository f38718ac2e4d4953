package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/pkg/logger"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/opstore"
	"ai-filepilot-be/pkg/retrieval"

	"github.com/google/uuid"
)

const (
	ItemStatusSuccess = "success"
	ItemStatusFailed  = "failed"
	ItemStatusSkipped = "skipped"
)

// ItemResult reports the outcome for one target of a batch operation.
type ItemResult struct {
	ItemId  string `json:"itemId"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Summary is one document summary produced by the summarize kind.
type Summary struct {
	ItemId  string `json:"itemId"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Result is the outcome of executing a staged operation. SearchResults and
// Summaries are set only for their respective kinds.
type Result struct {
	Message       string             `json:"message"`
	UndoAvailable bool               `json:"undoAvailable"`
	UndoDeadline  *time.Time         `json:"undoDeadline,omitempty"`
	Results       []ItemResult       `json:"results,omitempty"`
	SearchResults []retrieval.Result `json:"searchResults,omitempty"`
	Summaries     []Summary          `json:"summaries,omitempty"`
}

// Executor applies staged operations to the file tree. Batch kinds run
// item by item: one bad target fails that item, not the whole batch.
type Executor struct {
	factory   unitofwork.RepositoryFactory
	retriever *retrieval.Retriever
	llm       llm.LLMProvider
	logger    logger.ILogger
	undoTTL   time.Duration
}

func NewExecutor(
	factory unitofwork.RepositoryFactory,
	retriever *retrieval.Retriever,
	provider llm.LLMProvider,
	log logger.ILogger,
	undoTTL time.Duration,
) *Executor {
	if undoTTL <= 0 {
		undoTTL = opstore.DefaultTTL
	}
	return &Executor{
		factory:   factory,
		retriever: retriever,
		llm:       provider,
		logger:    log,
		undoTTL:   undoTTL,
	}
}

var errNotUndoable = fmt.Errorf("operation kind is not undoable")

// IsNotUndoable reports whether err marks a kind with no inverse.
func IsNotUndoable(err error) bool {
	return err == errNotUndoable
}

// Execute runs a staged operation and returns the per-item outcome.
// Mutating kinds run inside a transaction; read-only kinds do not.
func (e *Executor) Execute(ctx context.Context, op *opstore.StagedOperation) (*Result, error) {
	switch op.Operation.Type {
	case opstore.KindSearch:
		return e.executeSearch(ctx, op)
	case opstore.KindSummarize:
		return e.executeSummarize(ctx, op)
	}

	uow := e.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	var (
		res *Result
		err error
	)
	switch op.Operation.Type {
	case opstore.KindMove:
		res, err = e.executeMove(ctx, uow, op)
	case opstore.KindCopy:
		res, err = e.executeCopy(ctx, uow, op)
	case opstore.KindDelete:
		res, err = e.executeDelete(ctx, uow, op)
	case opstore.KindRename:
		res, err = e.executeRename(ctx, uow, op)
	case opstore.KindCreateFolder:
		res, err = e.executeCreateFolder(ctx, uow, op)
	default:
		err = fmt.Errorf("kind %q cannot be executed", op.Operation.Type)
	}
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	e.logger.Info("executor", "operation executed", map[string]interface{}{
		"operation_id": op.OperationId,
		"kind":         string(op.Operation.Type),
		"user_id":      op.UserId,
	})
	return res, nil
}

// Undo reverses a previously executed operation using the original staged
// record. Search and summarize have nothing to reverse.
func (e *Executor) Undo(ctx context.Context, op *opstore.StagedOperation) (*Result, error) {
	switch op.Operation.Type {
	case opstore.KindSearch, opstore.KindSummarize, opstore.KindError:
		return nil, errNotUndoable
	}

	uow := e.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	var (
		res *Result
		err error
	)
	switch op.Operation.Type {
	case opstore.KindMove:
		res, err = e.undoMove(ctx, uow, op)
	case opstore.KindCopy:
		res, err = e.undoCopy(ctx, uow, op)
	case opstore.KindDelete:
		res, err = e.undoDelete(ctx, uow, op)
	case opstore.KindRename:
		res, err = e.undoRename(ctx, uow, op)
	case opstore.KindCreateFolder:
		res, err = e.undoCreateFolder(ctx, uow, op)
	}
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	e.logger.Info("executor", "operation undone", map[string]interface{}{
		"operation_id": op.OperationId,
		"kind":         string(op.Operation.Type),
		"user_id":      op.UserId,
	})
	return res, nil
}

// undoDeadline is when the staged record expires: the staging TTL is the
// undo window, so the deadline is fixed at stage time.
func (e *Executor) undoDeadline(op *opstore.StagedOperation) *time.Time {
	t := op.CreatedAt.Add(e.undoTTL)
	return &t
}

// parentDir returns the containing directory of a path, "/" at the top.
func parentDir(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

func joinPath(dir, name string) string {
	dir = strings.TrimSuffix(dir, "/")
	return dir + "/" + name
}

func baseName(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// ensureFolder finds the folder at path for the user, creating the chain of
// missing folders on the way. The root has no row; it resolves to nil.
func (e *Executor) ensureFolder(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, path string) (*entity.Folder, error) {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil, nil
	}

	repo := uow.FolderRepository()
	existing, err := repo.FindOne(ctx,
		specification.ByPath{Path: path},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	parent, err := e.ensureFolder(ctx, uow, userId, parentDir(path))
	if err != nil {
		return nil, err
	}

	folder := &entity.Folder{
		Id:     uuid.New(),
		UserId: userId,
		Name:   baseName(path),
		Path:   path,
	}
	if parent != nil {
		id := parent.Id
		folder.ParentId = &id
	}
	if err := repo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}
