package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// SeedService 示例数据初始化
// 幂等：重复执行不会产生重复数据
type SeedService struct {
	db *gorm.DB
}

// NewSeedService 创建种子数据服务
func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// Run 写入示例零售商/国家及 Standard/Express 两种配送记录
func (s *SeedService) Run(ctx context.Context) error {
	log.Println("[Seed] 开始写入示例数据...")

	retailerNames := []string{"Amazon", "eBay", "Walmart", "Target", "Best Buy"}
	for _, name := range retailerNames {
		retailer := model.Retailer{Name: name}
		if err := s.db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&retailer).Error; err != nil {
			return err
		}
	}

	countries := []model.Country{
		{Name: "United States", Code: "US"},
		{Name: "United Kingdom", Code: "GB"},
		{Name: "Canada", Code: "CA"},
		{Name: "Australia", Code: "AU"},
		{Name: "Germany", Code: "DE"},
	}
	for i := range countries {
		if err := s.db.WithContext(ctx).
			Where("name = ?", countries[i].Name).
			FirstOrCreate(&countries[i]).Error; err != nil {
			return err
		}
	}

	// 每个零售商在每个国家各有 Standard 和 Express 两条记录
	var retailers []model.Retailer
	if err := s.db.WithContext(ctx).Find(&retailers).Error; err != nil {
		return err
	}
	var allCountries []model.Country
	if err := s.db.WithContext(ctx).Find(&allCountries).Error; err != nil {
		return err
	}

	samples := []model.DeliveryData{
		{
			Method:                "Standard",
			Cost:                  "$5.99",
			Duration:              "5-7 business days",
			FreeShippingThreshold: "$25.00",
			Carrier:               "Standard Carrier",
		},
		{
			Method:                "Express",
			Cost:                  "$12.99",
			Duration:              "2-3 business days",
			FreeShippingThreshold: "$50.00",
			Carrier:               "Express Carrier",
		},
	}

	for _, retailer := range retailers {
		for _, country := range allCountries {
			for _, sample := range samples {
				data := sample
				data.RetailerID = retailer.ID
				data.CountryID = country.ID
				data.Status = model.DeliveryStatusVerified
				data.DataSource = "seed"

				if err := s.db.WithContext(ctx).
					Where("retailer_id = ? AND country_id = ? AND method = ?",
						retailer.ID, country.ID, data.Method).
					FirstOrCreate(&data).Error; err != nil {
					return err
				}
			}
		}
	}

	log.Println("[Seed] 示例数据写入完成")
	return nil
}
