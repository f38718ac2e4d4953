package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-filepilot-be/internal/dto"
	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/executor"
	"ai-filepilot-be/internal/pkg/language"
	"ai-filepilot-be/internal/pkg/serverutils"
	"ai-filepilot-be/internal/repository/contract"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/intent"
	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/opstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replays canned responses in call order.
type scriptedLLM struct {
	responses []string
	calls     int
}

func (s *scriptedLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	if s.calls >= len(s.responses) {
		return "", errors.New("no scripted response left")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, "", options...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeOperationLogRepo struct {
	created  []*entity.OperationLog
	countErr error
}

func (f *fakeOperationLogRepo) Create(_ context.Context, log *entity.OperationLog) error {
	f.created = append(f.created, log)
	return nil
}

func (f *fakeOperationLogRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.OperationLog, error) {
	return f.created, nil
}

func (f *fakeOperationLogRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.created)), nil
}

// memFolderRepo is the minimal folder storage an executed create_folder and
// its undo touch: create, find by path, delete.
type memFolderRepo struct {
	byPath map[string]*entity.Folder
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{byPath: map[string]*entity.Folder{}}
}

func (r *memFolderRepo) Create(_ context.Context, f *entity.Folder) error {
	cp := *f
	r.byPath[f.Path] = &cp
	return nil
}

func (r *memFolderRepo) Update(context.Context, *entity.Folder) error { return nil }

func (r *memFolderRepo) Delete(_ context.Context, id uuid.UUID) error {
	for path, f := range r.byPath {
		if f.Id == id {
			delete(r.byPath, path)
		}
	}
	return nil
}

func (r *memFolderRepo) Restore(context.Context, uuid.UUID) error { return nil }

func (r *memFolderRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	for _, s := range specs {
		if sp, ok := s.(specification.ByPath); ok {
			if f, found := r.byPath[sp.Path]; found {
				cp := *f
				return &cp, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *memFolderRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Folder, error) {
	return nil, nil
}
func (r *memFolderRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *memFolderRepo) UpdatePathPrefix(context.Context, uint, string, string) (int64, error) {
	return 0, nil
}
func (r *memFolderRepo) DeleteUnderPath(context.Context, uint, string) (int64, error) {
	return 0, nil
}
func (r *memFolderRepo) RestoreUnderPath(context.Context, uint, string) (int64, error) {
	return 0, nil
}

type fakeUnitOfWork struct {
	opLogs  *fakeOperationLogRepo
	folders *memFolderRepo
	docs    *singleDocRepo
	chunks  *recordingChunkRepo
}

func (f *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error               { return nil }
func (f *fakeUnitOfWork) Rollback() error             { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository                   { return nil }
func (f *fakeUnitOfWork) FolderRepository() contract.FolderRepository               { return f.folders }
func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository           { return f.docs }
func (f *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository { return f.chunks }
func (f *fakeUnitOfWork) OperationLogRepository() contract.OperationLogRepository   { return f.opLogs }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type serviceFixture struct {
	service IOperationService
	store   opstore.Store
	opLogs  *fakeOperationLogRepo
}

const fixtureTTL = 10 * time.Minute

func newFixture(responses ...string) *serviceFixture {
	provider := &scriptedLLM{responses: responses}
	opLogs := &fakeOperationLogRepo{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{
		opLogs:  opLogs,
		folders: newMemFolderRepo(),
		docs:    &singleDocRepo{},
		chunks:  &recordingChunkRepo{},
	}}
	store := opstore.NewMemoryStore()

	// Executor and service share one TTL, same as the container wiring.
	exec := executor.NewExecutor(factory, nil, provider, nopLogger{}, fixtureTTL)
	svc := NewOperationService(
		store,
		intent.NewRouter(provider, nil),
		intent.NewExtractor(provider, nil),
		exec,
		factory,
		nil, // events are optional
		nopLogger{},
		fixtureTTL,
	)
	return &serviceFixture{service: svc, store: store, opLogs: opLogs}
}

func moveContext() opstore.OperationContext {
	return opstore.OperationContext{
		CurrentPath: "/work",
		SelectedFiles: []opstore.FileItem{
			{Id: "d1", Name: "report.pdf", Type: "file", Path: "/work/report.pdf"},
		},
		AvailableFolders: []opstore.FolderItem{
			{Id: "f1", Name: "work", Path: "/work"},
			{Id: "f2", Name: "마케팅", Path: "/work/marketing"},
		},
	}
}

func TestStageMoveCommand(t *testing.T) {
	f := newFixture(
		"<operation.type>move</operation.type>",
		"<destination.folder>마케팅</destination.folder>",
	)

	resp, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "이 파일을 마케팅폴더로 옮겨줘",
		Context: moveContext(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.OperationId, "op-"))
	assert.Equal(t, opstore.KindMove, resp.Operation.Type)
	assert.Equal(t, "/work/marketing", resp.Operation.Destination)
	assert.True(t, resp.RequiresConfirmation)
	assert.Equal(t, opstore.RiskMedium, resp.RiskLevel)
	require.NotNil(t, resp.ExpiresAt)
	assert.Contains(t, resp.Preview.Description, "이동합니다")

	staged, err := f.store.Get(context.Background(), resp.OperationId)
	require.NoError(t, err)
	require.NotNil(t, staged, "staged record must be in the store")
	assert.Equal(t, uint(7), staged.UserId)

	require.Len(t, f.opLogs.created, 1)
	assert.Equal(t, entity.OperationActionStaged, f.opLogs.created[0].Action)
}

func TestStageUnknownCommandBecomesError(t *testing.T) {
	f := newFixture("<operation.type>dance</operation.type>")

	resp, err := f.service.Stage(context.Background(), 7, language.English, &dto.StageOperationRequest{
		Command: "do a little dance",
		Context: moveContext(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.OperationId, "error-"))
	assert.Equal(t, opstore.KindError, resp.Operation.Type)
	assert.Equal(t, "Sorry, I could not understand that command.", resp.Operation.Message)
	assert.False(t, resp.RequiresConfirmation)
	assert.Equal(t, opstore.RiskNone, resp.RiskLevel)
	assert.Nil(t, resp.ExpiresAt, "error responses carry no expiry")
	assert.Empty(t, f.opLogs.created, "error responses are not audited")
}

func TestStageEmptyCommand(t *testing.T) {
	f := newFixture()

	_, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "   ",
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestStageSearchSkipsConfirmation(t *testing.T) {
	f := newFixture(
		"<operation.type>search</operation.type>",
		"<search.term>분기 보고서</search.term>",
	)

	resp, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "분기 보고서 어디에 있어?",
		Context: moveContext(),
	})
	require.NoError(t, err)

	assert.False(t, resp.RequiresConfirmation)
	assert.Equal(t, opstore.RiskLow, resp.RiskLevel)
	assert.Equal(t, "분기 보고서", resp.Operation.SearchTerm)
}

func TestExecuteRequiresConfirmation(t *testing.T) {
	f := newFixture(
		"<operation.type>move</operation.type>",
		"<destination.folder>마케팅</destination.folder>",
	)

	staged, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "이 파일을 마케팅폴더로 옮겨줘",
		Context: moveContext(),
	})
	require.NoError(t, err)

	_, err = f.service.Execute(context.Background(), 7, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: false})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "operation requires confirmation", appErr.Message)

	// The record survives a rejected execute
	rec, err := f.store.Get(context.Background(), staged.OperationId)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestCancelLifecycle(t *testing.T) {
	f := newFixture(
		"<operation.type>move</operation.type>",
		"<destination.folder>마케팅</destination.folder>",
	)

	staged, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "이 파일을 마케팅폴더로 옮겨줘",
		Context: moveContext(),
	})
	require.NoError(t, err)

	resp, err := f.service.Cancel(context.Background(), 7, staged.OperationId)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)

	// Cancelled means gone: execute and a second cancel both 404
	_, err = f.service.Cancel(context.Background(), 7, staged.OperationId)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	_, err = f.service.Execute(context.Background(), 7, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: true})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestOperationOwnership(t *testing.T) {
	f := newFixture(
		"<operation.type>move</operation.type>",
		"<destination.folder>마케팅</destination.folder>",
	)

	staged, err := f.service.Stage(context.Background(), 7, language.Korean, &dto.StageOperationRequest{
		Command: "이 파일을 마케팅폴더로 옮겨줘",
		Context: moveContext(),
	})
	require.NoError(t, err)

	for _, attempt := range []func() error{
		func() error { _, e := f.service.Cancel(context.Background(), 8, staged.OperationId); return e },
		func() error {
			_, e := f.service.Execute(context.Background(), 8, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: true})
			return e
		},
		func() error { _, e := f.service.Undo(context.Background(), 8, staged.OperationId); return e },
	} {
		var appErr *serverutils.AppError
		require.ErrorAs(t, attempt(), &appErr)
		assert.Equal(t, 403, appErr.Status)
	}

	// The record is untouched for the owner
	rec, err := f.store.Get(context.Background(), staged.OperationId)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestUndoRejectsReadOnlyKinds(t *testing.T) {
	f := newFixture()

	staged := &opstore.StagedOperation{
		OperationId: opstore.NewOperationId(),
		Command:     "분기 보고서 검색",
		Operation:   opstore.Operation{Type: opstore.KindSearch, SearchTerm: "분기 보고서"},
		UserId:      7,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Store(context.Background(), staged, time.Minute))

	_, err := f.service.Undo(context.Background(), 7, staged.OperationId)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "operation cannot be undone", appErr.Message)
}

func TestExecuteRetainsRecord(t *testing.T) {
	// Summarizing a folder selection completes with every item skipped and
	// nothing to undo. Even then the staged record must survive the execute.
	f := newFixture("<operation.type>summarize</operation.type>")
	ctx := context.Background()

	staged, err := f.service.Stage(ctx, 7, language.Korean, &dto.StageOperationRequest{
		Command: "이 폴더 요약해줘",
		Context: opstore.OperationContext{
			SelectedFiles: []opstore.FileItem{
				{Id: "f1", Name: "work", Type: "folder", Path: "/work"},
			},
		},
	})
	require.NoError(t, err)

	res, err := f.service.Execute(ctx, 7, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: true})
	require.NoError(t, err)
	assert.False(t, res.UndoAvailable)

	// Only expiry, cancel and undo remove a record.
	rec, err := f.store.Get(ctx, staged.OperationId)
	require.NoError(t, err)
	require.NotNil(t, rec, "execute must not delete the staged record")

	cancelRes, err := f.service.Cancel(ctx, 7, staged.OperationId)
	require.NoError(t, err)
	assert.True(t, cancelRes.Cancelled)
}

func TestExecuteUndoLifecycle(t *testing.T) {
	f := newFixture(
		"<operation.type>create_folder</operation.type>",
		"<folder.name>보고서</folder.name>\n<parent.folder>NONE</parent.folder>",
	)
	ctx := context.Background()

	staged, err := f.service.Stage(ctx, 7, language.Korean, &dto.StageOperationRequest{
		Command: "보고서 폴더 만들어줘",
	})
	require.NoError(t, err)

	res, err := f.service.Execute(ctx, 7, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: true})
	require.NoError(t, err)
	assert.True(t, res.UndoAvailable)

	// The undo window is the staging window: executing does not extend it,
	// and the advertised deadline matches the expiry returned at stage time.
	require.NotNil(t, res.UndoDeadline)
	require.NotNil(t, staged.ExpiresAt)
	assert.True(t, res.UndoDeadline.Equal(*staged.ExpiresAt),
		"undo deadline %v should equal staging expiry %v", res.UndoDeadline, staged.ExpiresAt)

	rec, err := f.store.Get(ctx, staged.OperationId)
	require.NoError(t, err)
	require.NotNil(t, rec, "executed operations stay staged until expiry")

	undoRes, err := f.service.Undo(ctx, 7, staged.OperationId)
	require.NoError(t, err)
	assert.Contains(t, undoRes.Message, "보고서")

	rec, err = f.store.Get(ctx, staged.OperationId)
	require.NoError(t, err)
	assert.Nil(t, rec, "undo removes the record")

	_, err = f.service.Execute(ctx, 7, staged.OperationId, &dto.ExecuteOperationRequest{Confirmed: true})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestHealth(t *testing.T) {
	f := newFixture()

	res, err := f.service.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "ok", res.Store)
	assert.Equal(t, "ok", res.Database)

	f.opLogs.countErr = errors.New("connection refused")
	res, err = f.service.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "connection refused", res.Database)
}
