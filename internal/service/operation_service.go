package service

import (
	"context"
	"strings"
	"time"

	"ai-filepilot-be/internal/dto"
	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/executor"
	"ai-filepilot-be/internal/pkg/language"
	"ai-filepilot-be/internal/pkg/logger"
	"ai-filepilot-be/internal/pkg/serverutils"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/events"
	"ai-filepilot-be/pkg/intent"
	"ai-filepilot-be/pkg/nats"
	"ai-filepilot-be/pkg/opstore"

	"github.com/google/uuid"
)

type IOperationService interface {
	Stage(ctx context.Context, userId uint, lang language.Lang, req *dto.StageOperationRequest) (*dto.StageOperationResponse, error)
	Execute(ctx context.Context, userId uint, operationId string, req *dto.ExecuteOperationRequest) (*dto.ExecuteOperationResponse, error)
	Cancel(ctx context.Context, userId uint, operationId string) (*dto.CancelOperationResponse, error)
	Undo(ctx context.Context, userId uint, operationId string) (*dto.UndoOperationResponse, error)
	Health(ctx context.Context) (*dto.OperationHealthResponse, error)
}

type operationService struct {
	store          opstore.Store
	router         *intent.Router
	extractor      *intent.Extractor
	executor       *executor.Executor
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *nats.Publisher
	logger         logger.ILogger
	ttl            time.Duration
}

func NewOperationService(
	store opstore.Store,
	router *intent.Router,
	extractor *intent.Extractor,
	exec *executor.Executor,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
	ttl time.Duration,
) IOperationService {
	if ttl <= 0 {
		ttl = opstore.DefaultTTL
	}
	return &operationService{
		store:          store,
		router:         router,
		extractor:      extractor,
		executor:       exec,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
		ttl:            ttl,
	}
}

func (s *operationService) Stage(ctx context.Context, userId uint, lang language.Lang, req *dto.StageOperationRequest) (*dto.StageOperationResponse, error) {
	command := strings.TrimSpace(req.Command)
	if command == "" {
		return nil, serverutils.BadRequest("command is required")
	}

	kind := s.router.Classify(ctx, command)
	extracted := s.extractor.Extract(ctx, kind, command, &req.Context)
	op := extracted.Operation

	// Error operations are answered but never stored; there is nothing to
	// confirm, execute or cancel.
	if op.Type == opstore.KindError {
		if lang == language.English {
			op.Message = "Sorry, I could not understand that command."
		}
		return &dto.StageOperationResponse{
			OperationId:          opstore.NewErrorId(),
			Operation:            op,
			RequiresConfirmation: false,
			RiskLevel:            opstore.RiskNone,
			Preview:              intent.BuildPreview(&op, &req.Context, lang, false),
		}, nil
	}

	staged := &opstore.StagedOperation{
		OperationId:          opstore.NewOperationId(),
		Command:              command,
		Context:              req.Context,
		Operation:            op,
		RequiresConfirmation: opstore.NeedsConfirmation(op.Type),
		RiskLevel:            opstore.RiskFor(op.Type),
		Preview:              intent.BuildPreview(&op, &req.Context, lang, extracted.NewFolder),
		UserId:               userId,
		CreatedAt:            time.Now(),
	}

	if err := s.store.Store(ctx, staged, s.ttl); err != nil {
		s.logger.Error("operation", "failed to store staged operation", map[string]interface{}{
			"user_id": userId,
			"kind":    string(op.Type),
			"error":   err.Error(),
		})
		return nil, serverutils.Internal("failed to store operation")
	}

	s.audit(ctx, staged, entity.OperationActionStaged)
	s.publishEvent(ctx, events.OperationStaged, staged)

	expiresAt := staged.CreatedAt.Add(s.ttl)
	return &dto.StageOperationResponse{
		OperationId:          staged.OperationId,
		Operation:            staged.Operation,
		RequiresConfirmation: staged.RequiresConfirmation,
		RiskLevel:            staged.RiskLevel,
		Preview:              staged.Preview,
		ExpiresAt:            &expiresAt,
	}, nil
}

func (s *operationService) Execute(ctx context.Context, userId uint, operationId string, req *dto.ExecuteOperationRequest) (*dto.ExecuteOperationResponse, error) {
	staged, err := s.load(ctx, userId, operationId)
	if err != nil {
		return nil, err
	}

	if staged.RequiresConfirmation && !req.Confirmed {
		return nil, serverutils.BadRequest("operation requires confirmation")
	}

	result, err := s.executor.Execute(ctx, staged)
	if err != nil {
		s.logger.Error("operation", "execution failed", map[string]interface{}{
			"operation_id": operationId,
			"kind":         string(staged.Operation.Type),
			"error":        err.Error(),
		})
		return nil, err
	}

	// The record stays in the store untouched: the staging TTL is the undo
	// window, so expiry alone evicts it. Only cancel and undo remove early.

	s.audit(ctx, staged, entity.OperationActionExecuted)
	s.publishEvent(ctx, events.OperationExecuted, staged)

	return &dto.ExecuteOperationResponse{
		OperationId:   operationId,
		Message:       result.Message,
		UndoAvailable: result.UndoAvailable,
		UndoDeadline:  result.UndoDeadline,
		Results:       result.Results,
		SearchResults: result.SearchResults,
		Summaries:     result.Summaries,
	}, nil
}

func (s *operationService) Cancel(ctx context.Context, userId uint, operationId string) (*dto.CancelOperationResponse, error) {
	staged, err := s.load(ctx, userId, operationId)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, operationId)
	if err != nil {
		return nil, serverutils.Internal("failed to cancel operation")
	}
	if !deleted {
		return nil, serverutils.NotFound("operation not found or expired")
	}

	s.audit(ctx, staged, entity.OperationActionCancelled)
	s.publishEvent(ctx, events.OperationCancelled, staged)

	return &dto.CancelOperationResponse{OperationId: operationId, Cancelled: true}, nil
}

func (s *operationService) Undo(ctx context.Context, userId uint, operationId string) (*dto.UndoOperationResponse, error) {
	staged, err := s.load(ctx, userId, operationId)
	if err != nil {
		return nil, err
	}

	result, err := s.executor.Undo(ctx, staged)
	if err != nil {
		if executor.IsNotUndoable(err) {
			return nil, serverutils.BadRequest("operation cannot be undone")
		}
		s.logger.Error("operation", "undo failed", map[string]interface{}{
			"operation_id": operationId,
			"kind":         string(staged.Operation.Type),
			"error":        err.Error(),
		})
		return nil, err
	}

	if _, err := s.store.Delete(ctx, operationId); err != nil {
		s.logger.Warn("operation", "failed to remove undone operation", map[string]interface{}{
			"operation_id": operationId,
			"error":        err.Error(),
		})
	}

	s.audit(ctx, staged, entity.OperationActionUndone)
	s.publishEvent(ctx, events.OperationUndone, staged)

	return &dto.UndoOperationResponse{
		OperationId: operationId,
		Message:     result.Message,
		Results:     result.Results,
	}, nil
}

func (s *operationService) Health(ctx context.Context) (*dto.OperationHealthResponse, error) {
	res := &dto.OperationHealthResponse{Status: "ok", Store: "ok", Database: "ok"}

	if err := s.store.HealthCheck(ctx); err != nil {
		res.Status = "degraded"
		res.Store = err.Error()
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := uow.OperationLogRepository().Count(ctx); err != nil {
		res.Status = "degraded"
		res.Database = err.Error()
	}
	return res, nil
}

// load fetches a staged record and enforces ownership. Missing and expired
// are indistinguishable on purpose.
func (s *operationService) load(ctx context.Context, userId uint, operationId string) (*opstore.StagedOperation, error) {
	staged, err := s.store.Get(ctx, operationId)
	if err != nil {
		return nil, serverutils.Internal("failed to read operation store")
	}
	if staged == nil {
		return nil, serverutils.NotFound("operation not found or expired")
	}
	if staged.UserId != userId {
		return nil, serverutils.Forbidden("operation belongs to another user")
	}
	return staged, nil
}

// audit writes the durable trail row. Failures are logged, never surfaced:
// the user-facing operation already happened.
func (s *operationService) audit(ctx context.Context, staged *opstore.StagedOperation, action entity.OperationAction) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := &entity.OperationLog{
		Id:          uuid.New(),
		OperationId: staged.OperationId,
		UserId:      staged.UserId,
		Kind:        string(staged.Operation.Type),
		Action:      action,
		Payload: map[string]interface{}{
			"command":   staged.Command,
			"operation": staged.Operation,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.OperationLogRepository().Create(ctx, log); err != nil {
		s.logger.Warn("operation", "failed to write audit log", map[string]interface{}{
			"operation_id": staged.OperationId,
			"action":       string(action),
			"error":        err.Error(),
		})
	}
}

func (s *operationService) publishEvent(ctx context.Context, eventType string, staged *opstore.StagedOperation) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewOperationEvent(eventType, staged.OperationId, string(staged.Operation.Type), staged.UserId)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("operation", "failed to publish event", map[string]interface{}{
			"operation_id": staged.OperationId,
			"event":        eventType,
			"error":        err.Error(),
		})
	}
}
