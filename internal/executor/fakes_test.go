package executor

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/contract"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/retrieval"

	"github.com/google/uuid"
)

// fakeTree is an in-memory stand-in for the persistence layer. It keeps
// soft-delete semantics so undo paths behave like the real repositories.
type fakeTree struct {
	folders map[uuid.UUID]*entity.Folder
	docs    map[uuid.UUID]*entity.Document
	chunks  map[uuid.UUID]*entity.DocumentChunk
}

func newFakeTree() *fakeTree {
	return &fakeTree{
		folders: map[uuid.UUID]*entity.Folder{},
		docs:    map[uuid.UUID]*entity.Document{},
		chunks:  map[uuid.UUID]*entity.DocumentChunk{},
	}
}

func (t *fakeTree) addFolder(userId uint, path string, parent *entity.Folder) *entity.Folder {
	f := &entity.Folder{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      path[strings.LastIndex(path, "/")+1:],
		Path:      path,
		CreatedAt: time.Now(),
	}
	if parent != nil {
		pid := parent.Id
		f.ParentId = &pid
	}
	t.folders[f.Id] = f
	return f
}

func (t *fakeTree) addDocument(userId uint, path, content string, folder *entity.Folder) *entity.Document {
	d := &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      path[strings.LastIndex(path, "/")+1:],
		Path:      path,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if folder != nil {
		fid := folder.Id
		d.FolderId = &fid
	}
	t.docs[d.Id] = d
	return d
}

func (t *fakeTree) addChunk(doc *entity.Document, index int, content string) *entity.DocumentChunk {
	c := &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: doc.Id,
		Content:    content,
		ChunkIndex: index,
		Embedding:  []float32{1, 0},
		CreatedAt:  time.Now(),
	}
	t.chunks[c.Id] = c
	return c
}

func underPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	return strings.HasPrefix(path, prefix+"/")
}

func folderMatches(f *entity.Folder, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if f.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if f.UserId != sp.UserID {
				return false
			}
		case specification.ByPath:
			if f.Path != sp.Path {
				return false
			}
		case specification.UnderPath:
			if !underPrefix(f.Path, sp.Prefix) {
				return false
			}
		case specification.ByName:
			if !strings.EqualFold(f.Name, sp.Name) {
				return false
			}
		}
	}
	return true
}

func docMatches(d *entity.Document, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if d.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if d.UserId != sp.UserID {
				return false
			}
		case specification.ByPath:
			if d.Path != sp.Path {
				return false
			}
		case specification.UnderPath:
			if !underPrefix(d.Path, sp.Prefix) {
				return false
			}
		case specification.ByName:
			if !strings.EqualFold(d.Name, sp.Name) {
				return false
			}
		}
	}
	return true
}

type fakeFolderRepo struct{ tree *fakeTree }

func (r *fakeFolderRepo) Create(_ context.Context, folder *entity.Folder) error {
	cp := *folder
	r.tree.folders[cp.Id] = &cp
	return nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *entity.Folder) error {
	if _, ok := r.tree.folders[folder.Id]; !ok {
		return errors.New("folder does not exist")
	}
	cp := *folder
	r.tree.folders[cp.Id] = &cp
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id uuid.UUID) error {
	f, ok := r.tree.folders[id]
	if !ok {
		return errors.New("folder does not exist")
	}
	now := time.Now()
	f.IsDeleted = true
	f.DeletedAt = &now
	return nil
}

func (r *fakeFolderRepo) Restore(_ context.Context, id uuid.UUID) error {
	f, ok := r.tree.folders[id]
	if !ok {
		return errors.New("folder does not exist")
	}
	f.IsDeleted = false
	f.DeletedAt = nil
	return nil
}

func (r *fakeFolderRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	for _, f := range r.tree.folders {
		if !f.IsDeleted && folderMatches(f, specs) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	var out []*entity.Folder
	for _, f := range r.tree.folders {
		if !f.IsDeleted && folderMatches(f, specs) {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeFolderRepo) UpdatePathPrefix(_ context.Context, userId uint, oldPrefix, newPrefix string) (int64, error) {
	oldPrefix = strings.TrimSuffix(oldPrefix, "/")
	newPrefix = strings.TrimSuffix(newPrefix, "/")
	var n int64
	for _, f := range r.tree.folders {
		if f.UserId == userId && underPrefix(f.Path, oldPrefix) {
			f.Path = newPrefix + f.Path[len(oldPrefix):]
			n++
		}
	}
	return n, nil
}

func (r *fakeFolderRepo) DeleteUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	now := time.Now()
	var n int64
	for _, f := range r.tree.folders {
		if f.UserId == userId && !f.IsDeleted && underPrefix(f.Path, prefix) {
			f.IsDeleted = true
			f.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (r *fakeFolderRepo) RestoreUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	var n int64
	for _, f := range r.tree.folders {
		if f.UserId == userId && f.IsDeleted && underPrefix(f.Path, prefix) {
			f.IsDeleted = false
			f.DeletedAt = nil
			n++
		}
	}
	return n, nil
}

type fakeDocumentRepo struct{ tree *fakeTree }

func (r *fakeDocumentRepo) Create(_ context.Context, document *entity.Document) error {
	cp := *document
	r.tree.docs[cp.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, document *entity.Document) error {
	if _, ok := r.tree.docs[document.Id]; !ok {
		return errors.New("document does not exist")
	}
	cp := *document
	r.tree.docs[cp.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	d, ok := r.tree.docs[id]
	if !ok {
		return errors.New("document does not exist")
	}
	now := time.Now()
	d.IsDeleted = true
	d.DeletedAt = &now
	return nil
}

func (r *fakeDocumentRepo) Restore(_ context.Context, id uuid.UUID) error {
	d, ok := r.tree.docs[id]
	if !ok {
		return errors.New("document does not exist")
	}
	d.IsDeleted = false
	d.DeletedAt = nil
	return nil
}

func (r *fakeDocumentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, d := range r.tree.docs {
		if !d.IsDeleted && docMatches(d, specs) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.tree.docs {
		if !d.IsDeleted && docMatches(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeDocumentRepo) UpdatePathPrefix(_ context.Context, userId uint, oldPrefix, newPrefix string) (int64, error) {
	oldPrefix = strings.TrimSuffix(oldPrefix, "/")
	newPrefix = strings.TrimSuffix(newPrefix, "/")
	var n int64
	for _, d := range r.tree.docs {
		if d.UserId == userId && underPrefix(d.Path, oldPrefix) {
			d.Path = newPrefix + d.Path[len(oldPrefix):]
			n++
		}
	}
	return n, nil
}

func (r *fakeDocumentRepo) DeleteUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	now := time.Now()
	var n int64
	for _, d := range r.tree.docs {
		if d.UserId == userId && !d.IsDeleted && underPrefix(d.Path, prefix) {
			d.IsDeleted = true
			d.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (r *fakeDocumentRepo) RestoreUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	var n int64
	for _, d := range r.tree.docs {
		if d.UserId == userId && d.IsDeleted && underPrefix(d.Path, prefix) {
			d.IsDeleted = false
			d.DeletedAt = nil
			n++
		}
	}
	return n, nil
}

type fakeChunkRepo struct{ tree *fakeTree }

func (r *fakeChunkRepo) Create(_ context.Context, chunk *entity.DocumentChunk) error {
	cp := *chunk
	r.tree.chunks[cp.Id] = &cp
	return nil
}

func (r *fakeChunkRepo) CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error {
	for _, c := range chunks {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentId(_ context.Context, documentId uuid.UUID) error {
	now := time.Now()
	for _, c := range r.tree.chunks {
		if c.DocumentId == documentId && !c.IsDeleted {
			c.IsDeleted = true
			c.DeletedAt = &now
		}
	}
	return nil
}

func (r *fakeChunkRepo) RestoreByDocumentId(_ context.Context, documentId uuid.UUID) error {
	for _, c := range r.tree.chunks {
		if c.DocumentId == documentId && c.IsDeleted {
			c.IsDeleted = false
			c.DeletedAt = nil
		}
	}
	return nil
}

func (r *fakeChunkRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var out []*entity.DocumentChunk
	for _, c := range r.tree.chunks {
		if c.IsDeleted {
			continue
		}
		match := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByDocumentId); ok && c.DocumentId != sp.DocumentId {
				match = false
			}
		}
		if match {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeChunkRepo) docsUnder(userId uint, prefix string) map[uuid.UUID]bool {
	ids := map[uuid.UUID]bool{}
	for _, d := range r.tree.docs {
		if d.UserId == userId && underPrefix(d.Path, prefix) {
			ids[d.Id] = true
		}
	}
	return ids
}

func (r *fakeChunkRepo) DeleteUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	ids := r.docsUnder(userId, prefix)
	now := time.Now()
	var n int64
	for _, c := range r.tree.chunks {
		if ids[c.DocumentId] && !c.IsDeleted {
			c.IsDeleted = true
			c.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (r *fakeChunkRepo) RestoreUnderPath(_ context.Context, userId uint, prefix string) (int64, error) {
	ids := r.docsUnder(userId, prefix)
	var n int64
	for _, c := range r.tree.chunks {
		if ids[c.DocumentId] && c.IsDeleted {
			c.IsDeleted = false
			c.DeletedAt = nil
			n++
		}
	}
	return n, nil
}

func (r *fakeChunkRepo) CloneByDocumentId(_ context.Context, srcDocumentId, dstDocumentId uuid.UUID) error {
	for _, c := range r.tree.chunks {
		if c.DocumentId == srcDocumentId && !c.IsDeleted {
			cp := *c
			cp.Id = uuid.New()
			cp.DocumentId = dstDocumentId
			r.tree.chunks[cp.Id] = &cp
		}
	}
	return nil
}

func (r *fakeChunkRepo) TopCandidates(context.Context, []float32, int, uint) ([]retrieval.Candidate, error) {
	return nil, nil
}

type fakeTreeUOW struct {
	tree *fakeTree
}

func (u *fakeTreeUOW) Begin(context.Context) error { return nil }
func (u *fakeTreeUOW) Commit() error               { return nil }
func (u *fakeTreeUOW) Rollback() error             { return nil }

func (u *fakeTreeUOW) UserRepository() contract.UserRepository { return nil }
func (u *fakeTreeUOW) FolderRepository() contract.FolderRepository {
	return &fakeFolderRepo{tree: u.tree}
}
func (u *fakeTreeUOW) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{tree: u.tree}
}
func (u *fakeTreeUOW) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{tree: u.tree}
}
func (u *fakeTreeUOW) OperationLogRepository() contract.OperationLogRepository { return nil }

type fakeTreeFactory struct {
	tree *fakeTree
}

func (f *fakeTreeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeTreeUOW{tree: f.tree}
}

type cannedLLM struct {
	response string
	err      error
}

func (c *cannedLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	return c.response, c.err
}

func (c *cannedLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return c.response, c.err
}

type silentLogger struct{}

func (silentLogger) Debug(string, string, map[string]interface{}) {}
func (silentLogger) Info(string, string, map[string]interface{})  {}
func (silentLogger) Warn(string, string, map[string]interface{})  {}
func (silentLogger) Error(string, string, map[string]interface{}) {}
func (silentLogger) Sync() error                                  { return nil }
