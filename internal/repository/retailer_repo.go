package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// ==================== RetailerRepository 零售商仓库 ====================

// RetailerRepository 零售商仓库接口
type RetailerRepository interface {
	Create(ctx context.Context, retailer *model.Retailer) error
	GetByID(ctx context.Context, id int64) (*model.Retailer, error)
	GetByIDWithDeliveryData(ctx context.Context, id int64) (*model.Retailer, error)
	GetByName(ctx context.Context, name string) (*model.Retailer, error)
	List(ctx context.Context, keyword string) ([]model.Retailer, error)
	Update(ctx context.Context, retailer *model.Retailer) error
	Delete(ctx context.Context, id int64) error
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

// ==================== 实现 ====================

type retailerRepository struct {
	db *gorm.DB
}

// NewRetailerRepository 创建零售商仓库
func NewRetailerRepository(db *gorm.DB) RetailerRepository {
	return &retailerRepository{db: db}
}

// Create 创建零售商
func (r *retailerRepository) Create(ctx context.Context, retailer *model.Retailer) error {
	return r.db.WithContext(ctx).Create(retailer).Error
}

// GetByID 根据 ID 获取零售商
func (r *retailerRepository) GetByID(ctx context.Context, id int64) (*model.Retailer, error) {
	var retailer model.Retailer
	err := r.db.WithContext(ctx).First(&retailer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &retailer, err
}

// GetByIDWithDeliveryData 获取零售商及其全部配送记录（含国家）
func (r *retailerRepository) GetByIDWithDeliveryData(ctx context.Context, id int64) (*model.Retailer, error) {
	var retailer model.Retailer
	err := r.db.WithContext(ctx).
		Preload("DeliveryData.Country").
		First(&retailer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &retailer, err
}

// GetByName 根据名称精确查询零售商
func (r *retailerRepository) GetByName(ctx context.Context, name string) (*model.Retailer, error) {
	var retailer model.Retailer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&retailer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &retailer, err
}

// List 零售商列表，keyword 为名称模糊搜索
func (r *retailerRepository) List(ctx context.Context, keyword string) ([]model.Retailer, error) {
	query := r.db.WithContext(ctx).Model(&model.Retailer{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	var list []model.Retailer
	err := query.Order("name ASC").Find(&list).Error
	return list, err
}

// Update 更新零售商
func (r *retailerRepository) Update(ctx context.Context, retailer *model.Retailer) error {
	return r.db.WithContext(ctx).Save(retailer).Error
}

// Delete 删除零售商（软删除）
func (r *retailerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Retailer{}, id).Error
}

// CountByIDs 统计给定 ID 中实际存在的零售商数量
func (r *retailerRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Retailer{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}
