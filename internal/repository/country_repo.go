package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// ==================== CountryRepository 国家仓库 ====================

// CountryRepository 国家仓库接口
type CountryRepository interface {
	Create(ctx context.Context, country *model.Country) error
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	GetByIDWithDeliveryData(ctx context.Context, id int64) (*model.Country, error)
	GetByName(ctx context.Context, name string) (*model.Country, error)
	GetByCode(ctx context.Context, code string) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
}

// ==================== 实现 ====================

type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository 创建国家仓库
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

// Create 创建国家
func (r *countryRepository) Create(ctx context.Context, country *model.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

// GetByID 根据 ID 获取国家
func (r *countryRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	var country model.Country
	err := r.db.WithContext(ctx).First(&country, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &country, err
}

// GetByIDWithDeliveryData 获取国家及其全部配送记录（含零售商）
func (r *countryRepository) GetByIDWithDeliveryData(ctx context.Context, id int64) (*model.Country, error) {
	var country model.Country
	err := r.db.WithContext(ctx).
		Preload("DeliveryData.Retailer").
		First(&country, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &country, err
}

// GetByName 根据名称精确查询国家
func (r *countryRepository) GetByName(ctx context.Context, name string) (*model.Country, error) {
	var country model.Country
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &country, err
}

// GetByCode 根据国家码查询国家
func (r *countryRepository) GetByCode(ctx context.Context, code string) (*model.Country, error) {
	var country model.Country
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &country, err
}

// List 国家列表，按名称排序
func (r *countryRepository) List(ctx context.Context) ([]model.Country, error) {
	var list []model.Country
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}
