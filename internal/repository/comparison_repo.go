package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// ==================== ComparisonRepository 比价历史仓库 ====================

// ComparisonRepository 比价历史仓库接口
// 历史记录一经创建不可修改，因此不提供 Update
type ComparisonRepository interface {
	Create(ctx context.Context, comparison *model.Comparison) error
	GetByUserID(ctx context.Context, userID int64) ([]model.Comparison, error)
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*model.Comparison, error)
}

// ==================== 实现 ====================

type comparisonRepository struct {
	db *gorm.DB
}

// NewComparisonRepository 创建比价历史仓库
func NewComparisonRepository(db *gorm.DB) ComparisonRepository {
	return &comparisonRepository{db: db}
}

// Create 保存比价记录
func (r *comparisonRepository) Create(ctx context.Context, comparison *model.Comparison) error {
	return r.db.WithContext(ctx).Create(comparison).Error
}

// GetByUserID 获取用户的全部比价历史，最新的在前
func (r *comparisonRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Comparison, error) {
	var list []model.Comparison
	err := r.db.WithContext(ctx).
		Preload("Country").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// GetByIDAndUserID 按 ID 获取比价记录，仅限本人
func (r *comparisonRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*model.Comparison, error) {
	var comparison model.Comparison
	err := r.db.WithContext(ctx).
		Preload("Country").
		Where("id = ? AND user_id = ?", id, userID).
		First(&comparison).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &comparison, err
}
