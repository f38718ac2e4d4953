package implementation

import (
	"context"
	"strings"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/mapper"
	"ai-filepilot-be/internal/model"
	"ai-filepilot-be/internal/repository/contract"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.DocumentChunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) RestoreByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.DocumentChunk{}).
		Where("document_id = ?", documentId).
		Update("deleted_at", nil).Error
}

func (r *DocumentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DocumentChunk{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) DeleteUnderPath(ctx context.Context, userId uint, prefix string) (int64, error) {
	prefix = strings.TrimSuffix(prefix, "/")
	res := r.db.WithContext(ctx).Exec(
		`UPDATE document_chunks SET deleted_at = NOW()
		 WHERE deleted_at IS NULL AND document_id IN (
		   SELECT id FROM documents WHERE user_id = ? AND path LIKE ?
		 )`,
		userId, prefix+"/%",
	)
	return res.RowsAffected, res.Error
}

func (r *DocumentChunkRepositoryImpl) RestoreUnderPath(ctx context.Context, userId uint, prefix string) (int64, error) {
	prefix = strings.TrimSuffix(prefix, "/")
	res := r.db.WithContext(ctx).Exec(
		`UPDATE document_chunks SET deleted_at = NULL
		 WHERE deleted_at IS NOT NULL AND document_id IN (
		   SELECT id FROM documents WHERE user_id = ? AND path LIKE ?
		 )`,
		userId, prefix+"/%",
	)
	return res.RowsAffected, res.Error
}

func (r *DocumentChunkRepositoryImpl) CloneByDocumentId(ctx context.Context, srcDocumentId, dstDocumentId uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO document_chunks (id, document_id, content, chunk_index, embedding, created_at)
		 SELECT gen_random_uuid(), ?, content, chunk_index, embedding, NOW()
		 FROM document_chunks
		 WHERE document_id = ? AND deleted_at IS NULL`,
		dstDocumentId, srcDocumentId,
	).Error
}

func (r *DocumentChunkRepositoryImpl) TopCandidates(ctx context.Context, queryVec []float32, limit int, userId uint) ([]retrieval.Candidate, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []*model.DocumentChunk

	// Cosine distance on pgvector: embedding <=> query. Joining documents
	// scopes the search to the caller's own files.
	err := r.db.WithContext(ctx).
		Select("document_chunks.*, 1 - (document_chunks.embedding <=> ?) as similarity", pgvector.NewVector(queryVec)).
		Joins("JOIN documents ON documents.id = document_chunks.document_id").
		Where("documents.user_id = ?", userId).
		Where("document_chunks.embedding IS NOT NULL").
		Where("document_chunks.deleted_at IS NULL").
		Where("documents.deleted_at IS NULL").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "document_chunks.embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(queryVec)},
		}}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, len(models))
	for i, m := range models {
		candidates[i] = retrieval.Candidate{
			ChunkId:    m.Id,
			DocumentId: m.DocumentId,
			Content:    m.Content,
			Embedding:  m.Embedding.Slice(),
			Similarity: m.Similarity,
		}
	}
	return candidates, nil
}
