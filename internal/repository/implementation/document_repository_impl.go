package implementation

import (
	"context"
	"errors"
	"strings"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/mapper"
	"ai-filepilot-be/internal/model"
	"ai-filepilot-be/internal/repository/contract"
	"ai-filepilot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

func (r *DocumentRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Document{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	var m model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DocumentRepositoryImpl) UpdatePathPrefix(ctx context.Context, userId uint, oldPrefix, newPrefix string) (int64, error) {
	oldPrefix = strings.TrimSuffix(oldPrefix, "/")
	newPrefix = strings.TrimSuffix(newPrefix, "/")
	res := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("user_id = ?", userId).
		Where("path LIKE ?", oldPrefix+"/%").
		Update("path", gorm.Expr("? || substring(path from char_length(?::text) + 1)", newPrefix, oldPrefix))
	return res.RowsAffected, res.Error
}

func (r *DocumentRepositoryImpl) DeleteUnderPath(ctx context.Context, userId uint, prefix string) (int64, error) {
	prefix = strings.TrimSuffix(prefix, "/")
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("path LIKE ?", prefix+"/%").
		Delete(&model.Document{})
	return res.RowsAffected, res.Error
}

func (r *DocumentRepositoryImpl) RestoreUnderPath(ctx context.Context, userId uint, prefix string) (int64, error) {
	prefix = strings.TrimSuffix(prefix, "/")
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Document{}).
		Where("user_id = ?", userId).
		Where("path LIKE ?", prefix+"/%").
		Where("deleted_at IS NOT NULL").
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
