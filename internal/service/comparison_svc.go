package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

// ==================== 费用解析 ====================

// parseCostValue 从自由格式的费用字符串中提取数值，仅用于排序
// 去掉数字和小数点以外的全部字符后按浮点数解析；
// 解析不出来一律按 0 处理。"Free" 解析为 0 是有意为之 —— 0 即"最便宜"，
// 正常的零费用行和解析失败的行在排序上无法区分，调用方需了解这一歧义。
// 注意 ParseFloat 要求整串合法："5.99." 这类多点残串按 0 处理，
// 不做前缀截断解析
func parseCostValue(raw string) float64 {
	var b strings.Builder
	for _, ch := range raw {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			b.WriteRune(ch)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// ==================== 比价服务 ====================

// ComparisonService 比价服务
type ComparisonService struct {
	retailerRepo   repository.RetailerRepository
	countryRepo    repository.CountryRepository
	deliveryRepo   repository.DeliveryDataRepository
	comparisonRepo repository.ComparisonRepository
}

// NewComparisonService 创建比价服务
func NewComparisonService(
	retailerRepo repository.RetailerRepository,
	countryRepo repository.CountryRepository,
	deliveryRepo repository.DeliveryDataRepository,
	comparisonRepo repository.ComparisonRepository,
) *ComparisonService {
	return &ComparisonService{
		retailerRepo:   retailerRepo,
		countryRepo:    countryRepo,
		deliveryRepo:   deliveryRepo,
		comparisonRepo: comparisonRepo,
	}
}

// Compare 对指定国家比较多个零售商的配送方案
// 前置条件由调用方保证：零售商和国家都存在，零售商数量在 1-10 之间
func (s *ComparisonService) Compare(ctx context.Context, retailerIDs []int64, countryID int64) ([]dto.ComparisonResult, error) {
	// 1. 取出相关配送记录，cost 升序即分组时的出现顺序
	deliveryData, err := s.deliveryRepo.FindForComparison(ctx, retailerIDs, countryID)
	if err != nil {
		return nil, err
	}

	country, err := s.countryRepo.GetByID(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, fmt.Errorf("国家 %d 不存在", countryID)
	}
	countrySummary := dto.CountrySummary{
		ID:   country.ID,
		Name: country.Name,
		Code: country.Code,
	}

	// 2. 按零售商分组，保留方式的出现顺序
	grouped := make(map[int64]*dto.ComparisonResult, len(retailerIDs))
	var order []int64

	for _, data := range deliveryData {
		result, ok := grouped[data.RetailerID]
		if !ok {
			result = &dto.ComparisonResult{
				Retailer: dto.RetailerSummary{
					ID:   data.Retailer.ID,
					Name: data.Retailer.Name,
				},
				Country: countrySummary,
				Methods: []dto.DeliveryMethod{},
			}
			grouped[data.RetailerID] = result
			order = append(order, data.RetailerID)
		}

		result.Methods = append(result.Methods, dto.DeliveryMethod{
			Method:                data.Method,
			Cost:                  data.Cost,
			Duration:              data.Duration,
			FreeShippingThreshold: data.FreeShippingThreshold,
			Carrier:               data.Carrier,
			AdditionalNotes:       data.AdditionalNotes,
		})
	}

	// 没有任何配送记录的零售商也要出现在结果里（CheapestOption 为空），
	// 由前端决定怎么展示"暂无数据"
	for _, retailerID := range retailerIDs {
		if _, ok := grouped[retailerID]; ok {
			continue
		}
		retailer, err := s.retailerRepo.GetByID(ctx, retailerID)
		if err != nil {
			return nil, err
		}
		if retailer == nil {
			return nil, fmt.Errorf("零售商 %d 不存在", retailerID)
		}
		grouped[retailerID] = &dto.ComparisonResult{
			Retailer: dto.RetailerSummary{ID: retailer.ID, Name: retailer.Name},
			Country:  countrySummary,
			Methods:  []dto.DeliveryMethod{},
		}
		order = append(order, retailerID)
	}

	results := make([]dto.ComparisonResult, 0, len(order))
	for _, retailerID := range order {
		results = append(results, *grouped[retailerID])
	}

	// 3. 每个零售商内部按解析出的费用稳定排序，取最便宜的一条
	for i := range results {
		if len(results[i].Methods) == 0 {
			continue
		}

		sortedMethods := make([]dto.DeliveryMethod, len(results[i].Methods))
		copy(sortedMethods, results[i].Methods)
		sort.SliceStable(sortedMethods, func(a, b int) bool {
			return parseCostValue(sortedMethods[a].Cost) < parseCostValue(sortedMethods[b].Cost)
		})

		cheapest := sortedMethods[0]
		results[i].CheapestOption = &dto.CheapestOption{
			Method:   cheapest.Method,
			Cost:     cheapest.Cost,
			Duration: cheapest.Duration,
		}
	}

	// 4. 零售商之间按最便宜费用升序稳定排序；
	// 任一方没有 CheapestOption 时视为相等，保持原有相对位置
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].CheapestOption == nil || results[b].CheapestOption == nil {
			return false
		}
		return parseCostValue(results[a].CheapestOption.Cost) < parseCostValue(results[b].CheapestOption.Cost)
	})

	return results, nil
}

// SaveComparison 保存比价历史记录
func (s *ComparisonService) SaveComparison(ctx context.Context, userID int64, retailerIDs []int64, countryID int64, results []dto.ComparisonResult) (*model.Comparison, error) {
	retailersJSON, err := json.Marshal(retailerIDs)
	if err != nil {
		return nil, err
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	comparison := &model.Comparison{
		UserID:    userID,
		Retailers: datatypes.JSON(retailersJSON),
		CountryID: countryID,
		Results:   datatypes.JSON(resultsJSON),
	}
	if err := s.comparisonRepo.Create(ctx, comparison); err != nil {
		return nil, err
	}
	return comparison, nil
}

// GetUserComparisons 获取用户的比价历史
func (s *ComparisonService) GetUserComparisons(ctx context.Context, userID int64) ([]model.Comparison, error) {
	return s.comparisonRepo.GetByUserID(ctx, userID)
}

// GetComparisonByID 按 ID 获取比价记录，仅限本人
func (s *ComparisonService) GetComparisonByID(ctx context.Context, id, userID int64) (*model.Comparison, error) {
	return s.comparisonRepo.GetByIDAndUserID(ctx, id, userID)
}
