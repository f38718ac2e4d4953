package implementation

import (
	"context"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/mapper"
	"ai-filepilot-be/internal/model"
	"ai-filepilot-be/internal/repository/contract"
	"ai-filepilot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OperationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OperationLogMapper
}

func NewOperationLogRepository(db *gorm.DB) contract.OperationLogRepository {
	return &OperationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewOperationLogMapper(),
	}
}

func (r *OperationLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OperationLogRepositoryImpl) Create(ctx context.Context, log *entity.OperationLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *OperationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OperationLog, error) {
	var models []*model.OperationLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OperationLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.OperationLog{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
