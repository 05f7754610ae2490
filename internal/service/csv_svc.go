package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

// ==================== CSV 行结构 ====================

// CSVRow 规范化后的 CSV 行
type CSVRow struct {
	Retailer              string
	Country               string
	Method                string
	Cost                  string
	Duration              string
	FreeShippingThreshold string
	Carrier               string
	AdditionalNotes       string
}

// ==================== 列名别名表 ====================

// 各规范字段的候选列名，按优先级排列，取第一个非空值。
// 纯数据表，方便扩展新的列名变体
var (
	retailerAliases  = []string{"retailer", "Retailer", "retailerCanon", "RetailerCanon", "retailerScopedNa", "RetailerScopedNa"}
	countryAliases   = []string{"countryNorm", "CountryNorm", "country", "Country"}
	methodAliases    = []string{"method", "Method", "service", "Service"}
	costAliases      = []string{"cost", "Cost", "priceValue", "PriceValue", "priceRaw", "PriceRaw"}
	durationAliases  = []string{"duration", "Duration", "deliveryDays", "DeliveryDays"}
	thresholdAliases = []string{"freeShippingThreshold", "Free Shipping Threshold"}
	carrierAliases   = []string{"carrier", "Carrier"}
	notesAliases     = []string{"additionalNotes", "Additional Notes", "extra", "Extra"}
)

// 形如 "0 FREE" / "O FREE" 的免费写法
var freeCostPattern = regexp.MustCompile(`^[0O]\s+FREE$`)

// ==================== CSV 解析 ====================

// ParseCSV 解析 CSV 字节流并规范化每一行
// 要求带表头，列顺序不限；任何一行解析失败则整体报错，不返回部分结果
func ParseCSV(r io.Reader) ([]CSVRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}

	// 列名 -> 下标，重复列名以先出现的为准
	headerIdx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := headerIdx[name]; !ok {
			headerIdx[name] = i
		}
	}

	var rows []CSVRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析 CSV 行失败: %w", err)
		}

		rows = append(rows, CSVRow{
			Retailer:              pickField(record, headerIdx, retailerAliases),
			Country:               pickField(record, headerIdx, countryAliases),
			Method:                pickField(record, headerIdx, methodAliases),
			Cost:                  normalizeCost(pickField(record, headerIdx, costAliases)),
			Duration:              pickField(record, headerIdx, durationAliases),
			FreeShippingThreshold: pickField(record, headerIdx, thresholdAliases),
			Carrier:               pickField(record, headerIdx, carrierAliases),
			AdditionalNotes:       pickField(record, headerIdx, notesAliases),
		})
	}

	return rows, nil
}

// pickField 按别名优先级取第一个非空值
func pickField(record []string, headerIdx map[string]int, aliases []string) string {
	for _, alias := range aliases {
		idx, ok := headerIdx[alias]
		if !ok || idx >= len(record) {
			continue
		}
		if value := record[idx]; value != "" {
			return value
		}
	}
	return ""
}

// normalizeCost 规范化费用值
// "FREE"、"0 FREE"、"O FREE" 等免费写法统一为 "Free"，
// 其余保留去除首尾空白后的原始字符串（不做币种归一化）
func normalizeCost(cost string) string {
	cost = strings.TrimSpace(cost)
	if cost == "" {
		return cost
	}

	upper := strings.ToUpper(cost)
	if upper == "FREE" || upper == "0 FREE" || upper == "O FREE" || freeCostPattern.MatchString(upper) {
		return "Free"
	}
	return cost
}

// ==================== 行校验 ====================

// ValidateRows 校验每行的必填字段，返回是否通过及各行错误信息
func ValidateRows(rows []CSVRow) (bool, []string) {
	var errs []string
	for i, row := range rows {
		if row.Retailer == "" || row.Country == "" || row.Method == "" || row.Cost == "" || row.Duration == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields (retailer, country, method, cost, duration)", i+1))
		}
	}
	return len(errs) == 0, errs
}

// ==================== CSV 导入服务 ====================

// CSVService CSV 导入服务
type CSVService struct {
	retailerRepo repository.RetailerRepository
	countryRepo  repository.CountryRepository
	deliveryRepo repository.DeliveryDataRepository
}

// NewCSVService 创建 CSV 导入服务
func NewCSVService(
	retailerRepo repository.RetailerRepository,
	countryRepo repository.CountryRepository,
	deliveryRepo repository.DeliveryDataRepository,
) *CSVService {
	return &CSVService{
		retailerRepo: retailerRepo,
		countryRepo:  countryRepo,
		deliveryRepo: deliveryRepo,
	}
}

// BulkUpsert 按行执行配送记录 upsert，返回新建/更新数量
// 行与行相互独立顺序执行，不开跨行事务；中途失败时已处理的行保持已提交状态。
// 缺少必填字段的行静默跳过，不计入 created/updated
func (s *CSVService) BulkUpsert(ctx context.Context, rows []CSVRow) (created, updated int, err error) {
	for _, row := range rows {
		if row.Retailer == "" || row.Country == "" || row.Method == "" || row.Cost == "" || row.Duration == "" {
			continue // 跳过无效行
		}

		// 1. find-or-create 零售商
		retailer, err := s.findOrCreateRetailer(ctx, strings.TrimSpace(row.Retailer))
		if err != nil {
			return created, updated, err
		}

		// 2. find-or-create 国家（新国家需要分配国家码）
		country, err := s.findOrCreateCountry(ctx, strings.TrimSpace(row.Country))
		if err != nil {
			return created, updated, err
		}

		// 3. 按自然键 upsert 配送记录
		method := strings.TrimSpace(row.Method)
		existing, err := s.deliveryRepo.GetByNaturalKey(ctx, retailer.ID, country.ID, method)
		if err != nil {
			return created, updated, err
		}

		if existing != nil {
			err = s.deliveryRepo.UpdateFields(ctx, existing.ID, map[string]interface{}{
				"cost":                    strings.TrimSpace(row.Cost),
				"duration":                strings.TrimSpace(row.Duration),
				"free_shipping_threshold": strings.TrimSpace(row.FreeShippingThreshold),
				"carrier":                 strings.TrimSpace(row.Carrier),
				"additional_notes":        strings.TrimSpace(row.AdditionalNotes),
				"status":                  model.DeliveryStatusVerified,
			})
			if err != nil {
				return created, updated, err
			}
			updated++
		} else {
			err = s.deliveryRepo.Create(ctx, &model.DeliveryData{
				RetailerID:            retailer.ID,
				CountryID:             country.ID,
				Method:                method,
				Cost:                  strings.TrimSpace(row.Cost),
				Duration:              strings.TrimSpace(row.Duration),
				FreeShippingThreshold: strings.TrimSpace(row.FreeShippingThreshold),
				Carrier:               strings.TrimSpace(row.Carrier),
				AdditionalNotes:       strings.TrimSpace(row.AdditionalNotes),
				Status:                model.DeliveryStatusVerified,
				DataSource:            "csv_import",
			})
			if err != nil {
				return created, updated, err
			}
			created++
		}
	}

	return created, updated, nil
}

// findOrCreateRetailer 按名称查找零售商，不存在则创建
// 并发导入可能导致两个请求同时创建同名零售商，唯一约束报错时回查即可
func (s *CSVService) findOrCreateRetailer(ctx context.Context, name string) (*model.Retailer, error) {
	retailer, err := s.retailerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if retailer != nil {
		return retailer, nil
	}

	retailer = &model.Retailer{Name: name}
	if err := s.retailerRepo.Create(ctx, retailer); err != nil {
		// 唯一约束冲突：别的请求抢先创建了，回查复用
		if existing, lookupErr := s.retailerRepo.GetByName(ctx, name); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("创建零售商 %q 失败: %w", name, err)
	}
	return retailer, nil
}

// findOrCreateCountry 按名称查找国家，不存在则分配国家码并创建
func (s *CSVService) findOrCreateCountry(ctx context.Context, name string) (*model.Country, error) {
	country, err := s.countryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if country != nil {
		return country, nil
	}

	code, err := s.generateUniqueCountryCode(ctx, name)
	if err != nil {
		return nil, err
	}

	country = &model.Country{Name: name, Code: code}
	if err := s.countryRepo.Create(ctx, country); err != nil {
		// 唯一约束冲突（并发创建同名国家或撞码），回查复用
		if existing, lookupErr := s.countryRepo.GetByName(ctx, name); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("创建国家 %q 失败: %w", name, err)
	}
	return country, nil
}

// ==================== 国家码分配 ====================

// 常见国家的 ISO 码映射
var countryCodeMap = map[string]string{
	"United States":  "US",
	"United Kingdom": "GB",
	"Canada":         "CA",
	"Australia":      "AU",
	"Germany":        "DE",
	"France":         "FR",
	"Italy":          "IT",
	"Spain":          "ES",
	"Netherlands":    "NL",
	"Belgium":        "BE",
	"Austria":        "AT",
	"Switzerland":    "CH",
	"Sweden":         "SE",
	"Norway":         "NO",
	"Denmark":        "DK",
	"Finland":        "FI",
	"Poland":         "PL",
	"Portugal":       "PT",
	"Ireland":        "IE",
	"Greece":         "GR",
	"Czech Republic": "CZ",
	"Hungary":        "HU",
	"Romania":        "RO",
	"Japan":          "JP",
	"China":          "CN",
	"India":          "IN",
	"Brazil":         "BR",
	"Mexico":         "MX",
	"South Korea":    "KR",
	"Israel":         "IL",
	"New Zealand":    "NZ",
	"South Africa":   "ZA",
}

var nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
var nonUpperPattern = regexp.MustCompile(`[^A-Z]`)

// generateUniqueCountryCode 为新国家生成唯一的两位国家码
// 仅在按名称查不到国家时调用。优先用 ISO 映射，其次取名称各单词首字母，
// 撞码时按固定规则依次变换字母，最多探测 50 次后退化为哈希码
func (s *CSVService) generateUniqueCountryCode(ctx context.Context, countryName string) (string, error) {
	trimmedName := strings.TrimSpace(countryName)

	// 1. 先查 ISO 映射
	if mappedCode, ok := countryCodeMap[trimmedName]; ok {
		existing, err := s.countryRepo.GetByCode(ctx, mappedCode)
		if err != nil {
			return "", err
		}
		if existing == nil || existing.Name == trimmedName {
			return mappedCode, nil
		}
	}

	// 2. 从名称推导候选码：各单词首字母大写，截取两位
	cleaned := nonLetterPattern.ReplaceAllString(trimmedName, "")
	var initials strings.Builder
	for _, word := range strings.Fields(cleaned) {
		initials.WriteString(strings.ToUpper(word[:1]))
	}
	baseCode := initials.String()
	if len(baseCode) > 2 {
		baseCode = baseCode[:2]
	}

	// 单个单词时取名称前两个字母
	if len(baseCode) < 2 {
		alt := trimmedName
		if len(alt) > 2 {
			alt = alt[:2]
		}
		baseCode = nonUpperPattern.ReplaceAllString(strings.ToUpper(alt), "")
	}

	// 不足两位补 'X'
	if len(baseCode) < 2 {
		baseCode = (baseCode + "XX")[:2]
	}

	// 3. 探测可用性，撞码时按固定规则生成下一个候选
	code := baseCode
	attempts := 0
	const maxAttempts = 50

	for attempts < maxAttempts {
		existing, err := s.countryRepo.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil || existing.Name == trimmedName {
			return code, nil
		}

		// 被别的国家占用，换下一个候选
		attempts++

		if attempts < 26 {
			// 固定首字母，第二位轮换 A-Z
			code = string(baseCode[0]) + string(rune('A'+attempts-1))
		} else if attempts < 52 {
			// 固定第二位，首字母轮换 A-Z
			secondChar := baseCode[0]
			if len(baseCode) > 1 {
				secondChar = baseCode[1]
			}
			code = string(rune('A'+attempts-26)) + string(secondChar)
		} else {
			// 哈希兜底：attempt 计数加名称字符码求和
			hash := attempts
			for _, ch := range trimmedName {
				hash += int(ch)
			}
			code = string(rune('A'+hash%26)) + string(rune('A'+(hash*7)%26))
		}
	}

	// 4. 最终兜底：时间参与哈希。此处不再回查，接受极小的撞码概率，
	// 真正撞上时由唯一约束兜底，调用方回查处理
	hash := int(time.Now().UnixMilli())
	for _, ch := range trimmedName {
		hash += int(ch)
	}
	if hash < 0 {
		hash = -hash
	}
	return string(rune('A'+hash%26)) + string(rune('A'+(hash*7)%26)), nil
}
