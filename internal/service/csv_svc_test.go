package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCSVTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Retailer{}, &model.Country{}, &model.DeliveryData{})
	return db
}

func newCSVTestService(db *gorm.DB) *CSVService {
	return NewCSVService(
		repository.NewRetailerRepository(db),
		repository.NewCountryRepository(db),
		repository.NewDeliveryDataRepository(db),
	)
}

// ==================== CSV 解析 ====================

func TestParseCSV_HeaderAliases(t *testing.T) {
	// priceRaw 是 cost 的低优先级别名，cost 列为空时取 priceRaw
	input := "retailer,country,method,cost,priceRaw,duration\n" +
		"Amazon,United States,Standard,,$5.99,5-7 days\n"

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Cost != "$5.99" {
		t.Errorf("cost = %q, want $5.99", rows[0].Cost)
	}
	if rows[0].Retailer != "Amazon" || rows[0].Country != "United States" {
		t.Errorf("retailer/country 解析错误: %+v", rows[0])
	}
}

func TestParseCSV_CostAliasPriority(t *testing.T) {
	// cost 列有值时优先于 priceRaw
	input := "retailer,country,method,cost,priceRaw,duration\n" +
		"Amazon,Canada,Express,$12.99,$99.99,2-3 days\n"

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rows[0].Cost != "$12.99" {
		t.Errorf("cost = %q, want $12.99", rows[0].Cost)
	}
}

func TestNormalizeCost_FreeVariants(t *testing.T) {
	cases := map[string]string{
		"FREE":    "Free",
		"free":    "Free",
		"0 FREE":  "Free",
		"O FREE":  "Free",
		"o free":  "Free",
		"$5.99":   "$5.99",
		" $5.99 ": "$5.99",
		"":        "",
		"Freedom": "Freedom",
	}

	for input, want := range cases {
		if got := normalizeCost(input); got != want {
			t.Errorf("normalizeCost(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseCSV_MalformedAborts(t *testing.T) {
	cases := map[string]string{
		"列数不齐": "retailer,country,method,cost,duration\n" +
			"Amazon,United States,Standard,$5.99,5-7 days\n" +
			"eBay,Canada,Standard\n",
		"引号未闭合": "retailer,country,method,cost,duration\n" +
			"Amazon,\"United States,Standard,$5.99,5-7 days\n",
	}

	for name, input := range cases {
		rows, err := ParseCSV(strings.NewReader(input))
		if err == nil {
			t.Errorf("%s: 应整体报错", name)
		}
		if rows != nil {
			t.Errorf("%s: 报错时不应返回部分结果, got %d 行", name, len(rows))
		}
	}
}

func TestValidateRows_MissingDuration(t *testing.T) {
	rows := []CSVRow{
		{Retailer: "Amazon", Country: "Canada", Method: "Standard", Cost: "$5.99", Duration: "5-7 days"},
		{Retailer: "eBay", Country: "Canada", Method: "Standard", Cost: "$5.99"},
	}

	ok, errs := ValidateRows(rows)
	if ok {
		t.Fatal("缺少 duration 的行应该校验失败")
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %d, want 1", len(errs))
	}
	if !strings.Contains(errs[0], "Row 2") {
		t.Errorf("错误信息应指向第 2 行: %s", errs[0])
	}
}

// ==================== 批量 Upsert ====================

func TestBulkUpsert_CreateThenUpdate(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)
	ctx := context.Background()

	rows := []CSVRow{
		{Retailer: "Amazon", Country: "United States", Method: "Standard", Cost: "$5.99", Duration: "5-7 days"},
	}

	created, updated, err := svc.BulkUpsert(ctx, rows)
	if err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}
	if created != 1 || updated != 0 {
		t.Errorf("created/updated = %d/%d, want 1/0", created, updated)
	}

	// 同一自然键再次导入：更新而不是新建
	rows[0].Cost = "$6.99"
	created, updated, err = svc.BulkUpsert(ctx, rows)
	if err != nil {
		t.Fatalf("二次导入失败: %v", err)
	}
	if created != 0 || updated != 1 {
		t.Errorf("created/updated = %d/%d, want 0/1", created, updated)
	}

	var data model.DeliveryData
	db.First(&data)
	if data.Cost != "$6.99" {
		t.Errorf("cost = %q, want $6.99", data.Cost)
	}
	if data.Status != model.DeliveryStatusVerified {
		t.Errorf("status = %q, want verified", data.Status)
	}

	var count int64
	db.Model(&model.DeliveryData{}).Count(&count)
	if count != 1 {
		t.Errorf("记录数 = %d, want 1", count)
	}
}

func TestBulkUpsert_SkipsInvalidRows(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)

	rows := []CSVRow{
		{Retailer: "Amazon", Country: "Canada", Method: "Standard", Cost: "$5.99", Duration: "5-7 days"},
		{Retailer: "eBay", Country: "Canada", Method: "Standard", Cost: "$5.99"}, // 缺 duration
	}

	created, updated, err := svc.BulkUpsert(context.Background(), rows)
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if created != 1 || updated != 0 {
		t.Errorf("created/updated = %d/%d, want 1/0", created, updated)
	}
}

// ==================== 并发创建冲突恢复 ====================

// blindRetailerRepo 模拟并发窗口：首次查名返回空，
// 随后 Create 撞唯一约束，恢复路径的回查走真实仓库
type blindRetailerRepo struct {
	repository.RetailerRepository
	missed bool
}

func (r *blindRetailerRepo) GetByName(ctx context.Context, name string) (*model.Retailer, error) {
	if !r.missed {
		r.missed = true
		return nil, nil
	}
	return r.RetailerRepository.GetByName(ctx, name)
}

type blindCountryRepo struct {
	repository.CountryRepository
	missed bool
}

func (r *blindCountryRepo) GetByName(ctx context.Context, name string) (*model.Country, error) {
	if !r.missed {
		r.missed = true
		return nil, nil
	}
	return r.CountryRepository.GetByName(ctx, name)
}

func TestFindOrCreateRetailer_ConflictRecovers(t *testing.T) {
	db := setupCSVTestDB(t)
	ctx := context.Background()

	existing := model.Retailer{Name: "Amazon"}
	db.Create(&existing)

	svc := NewCSVService(
		&blindRetailerRepo{RetailerRepository: repository.NewRetailerRepository(db)},
		repository.NewCountryRepository(db),
		repository.NewDeliveryDataRepository(db),
	)

	retailer, err := svc.findOrCreateRetailer(ctx, "Amazon")
	if err != nil {
		t.Fatalf("冲突恢复失败: %v", err)
	}
	if retailer == nil || retailer.ID != existing.ID {
		t.Errorf("应复用已有零售商 %d, got %+v", existing.ID, retailer)
	}

	var count int64
	db.Model(&model.Retailer{}).Count(&count)
	if count != 1 {
		t.Errorf("零售商数 = %d, want 1", count)
	}
}

func TestFindOrCreateCountry_ConflictRecovers(t *testing.T) {
	db := setupCSVTestDB(t)
	ctx := context.Background()

	existing := model.Country{Name: "Japan", Code: "JP"}
	db.Create(&existing)

	svc := NewCSVService(
		repository.NewRetailerRepository(db),
		&blindCountryRepo{CountryRepository: repository.NewCountryRepository(db)},
		repository.NewDeliveryDataRepository(db),
	)

	country, err := svc.findOrCreateCountry(ctx, "Japan")
	if err != nil {
		t.Fatalf("冲突恢复失败: %v", err)
	}
	if country == nil || country.ID != existing.ID {
		t.Errorf("应复用已有国家 %d, got %+v", existing.ID, country)
	}

	var count int64
	db.Model(&model.Country{}).Count(&count)
	if count != 1 {
		t.Errorf("国家数 = %d, want 1", count)
	}
}

// ==================== 国家码分配 ====================

func TestGenerateCountryCode_ISOMapping(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)

	code, err := svc.generateUniqueCountryCode(context.Background(), "United States")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	if code != "US" {
		t.Errorf("code = %q, want US", code)
	}
}

func TestGenerateCountryCode_CollisionRotatesSecondLetter(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)
	ctx := context.Background()

	// UR 被占用后，Uruguay 的第一个候补是首字母固定、第二位从 A 轮换
	db.Create(&model.Country{Name: "Urland", Code: "UR"})

	code, err := svc.generateUniqueCountryCode(ctx, "Uruguay")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	if code != "UA" {
		t.Errorf("code = %q, want UA", code)
	}
}

func TestGenerateCountryCode_ShortNamePadsWithX(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)

	code, err := svc.generateUniqueCountryCode(context.Background(), "Q")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	if code != "QX" {
		t.Errorf("code = %q, want QX", code)
	}
}

func TestFindOrCreateCountry_ReusesExisting(t *testing.T) {
	db := setupCSVTestDB(t)
	svc := newCSVTestService(db)
	ctx := context.Background()

	first, err := svc.findOrCreateCountry(ctx, "Japan")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if first.Code != "JP" {
		t.Errorf("code = %q, want JP", first.Code)
	}

	second, err := svc.findOrCreateCountry(ctx, "Japan")
	if err != nil {
		t.Fatalf("回查失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("同名国家应复用，got ID %d / %d", first.ID, second.ID)
	}
}
