package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// ==================== DeliveryDataRepository 配送记录仓库 ====================

// DeliveryFilter 配送记录筛选条件
type DeliveryFilter struct {
	RetailerID int64
	CountryID  int64
	Method     string // 模糊匹配
}

// DeliveryDataRepository 配送记录仓库接口
type DeliveryDataRepository interface {
	Create(ctx context.Context, data *model.DeliveryData) error
	GetByID(ctx context.Context, id int64) (*model.DeliveryData, error)
	// GetByNaturalKey 按自然键 (零售商, 国家, 方式) 查询
	GetByNaturalKey(ctx context.Context, retailerID, countryID int64, method string) (*model.DeliveryData, error)
	Update(ctx context.Context, data *model.DeliveryData) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter DeliveryFilter) ([]model.DeliveryData, error)

	// FindForComparison 查询比价所需的配送记录（预加载零售商和国家）
	FindForComparison(ctx context.Context, retailerIDs []int64, countryID int64) ([]model.DeliveryData, error)

	// MarkStaleUnverified 把超过 before 未更新的 verified 记录降级为 requires_verification
	MarkStaleUnverified(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 实现 ====================

type deliveryDataRepository struct {
	db *gorm.DB
}

// NewDeliveryDataRepository 创建配送记录仓库
func NewDeliveryDataRepository(db *gorm.DB) DeliveryDataRepository {
	return &deliveryDataRepository{db: db}
}

// Create 创建配送记录
func (r *deliveryDataRepository) Create(ctx context.Context, data *model.DeliveryData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

// GetByID 根据 ID 获取配送记录（含零售商和国家）
func (r *deliveryDataRepository) GetByID(ctx context.Context, id int64) (*model.DeliveryData, error) {
	var data model.DeliveryData
	err := r.db.WithContext(ctx).
		Preload("Retailer").
		Preload("Country").
		First(&data, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &data, err
}

// GetByNaturalKey 按自然键查询配送记录
func (r *deliveryDataRepository) GetByNaturalKey(ctx context.Context, retailerID, countryID int64, method string) (*model.DeliveryData, error) {
	var data model.DeliveryData
	err := r.db.WithContext(ctx).
		Where("retailer_id = ? AND country_id = ? AND method = ?", retailerID, countryID, method).
		First(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &data, err
}

// Update 更新配送记录
func (r *deliveryDataRepository) Update(ctx context.Context, data *model.DeliveryData) error {
	return r.db.WithContext(ctx).Save(data).Error
}

// UpdateFields 按字段更新配送记录
func (r *deliveryDataRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.DeliveryData{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete 删除配送记录（软删除）
func (r *deliveryDataRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.DeliveryData{}, id).Error
}

// List 配送记录列表
// 按零售商名称、国家名称、费用排序；method 不区分大小写模糊匹配
func (r *deliveryDataRepository) List(ctx context.Context, filter DeliveryFilter) ([]model.DeliveryData, error) {
	query := r.db.WithContext(ctx).
		Model(&model.DeliveryData{}).
		Joins("LEFT JOIN retailers ON retailers.id = delivery_data.retailer_id").
		Joins("LEFT JOIN countries ON countries.id = delivery_data.country_id").
		Preload("Retailer").
		Preload("Country")

	if filter.RetailerID != 0 {
		query = query.Where("delivery_data.retailer_id = ?", filter.RetailerID)
	}
	if filter.CountryID != 0 {
		query = query.Where("delivery_data.country_id = ?", filter.CountryID)
	}
	if filter.Method != "" {
		query = query.Where("LOWER(delivery_data.method) LIKE ?", "%"+strings.ToLower(filter.Method)+"%")
	}

	var list []model.DeliveryData
	err := query.Order("retailers.name ASC, countries.name ASC, delivery_data.cost ASC").Find(&list).Error
	return list, err
}

// FindForComparison 查询比价所需的配送记录
// 按 cost 字符串升序排列，该顺序即后续分组的"首次出现顺序"
func (r *deliveryDataRepository) FindForComparison(ctx context.Context, retailerIDs []int64, countryID int64) ([]model.DeliveryData, error) {
	var list []model.DeliveryData
	err := r.db.WithContext(ctx).
		Preload("Retailer").
		Preload("Country").
		Where("retailer_id IN ? AND country_id = ?", retailerIDs, countryID).
		Order("cost ASC").
		Find(&list).Error
	return list, err
}

// MarkStaleUnverified 降级长期未更新的 verified 记录
func (r *deliveryDataRepository) MarkStaleUnverified(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DeliveryData{}).
		Where("status = ? AND updated_at < ?", model.DeliveryStatusVerified, before).
		Update("status", model.DeliveryStatusRequiresVerification)
	return result.RowsAffected, result.Error
}
