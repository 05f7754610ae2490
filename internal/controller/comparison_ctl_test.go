package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retailer_compare_v1/internal/middleware"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
	"retailer_compare_v1/internal/service"
)

// ==================== 测试辅助 ====================

func setupComparisonCtlTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.SysUser{}, &model.Retailer{}, &model.Country{},
		&model.DeliveryData{}, &model.Comparison{})
	return db
}

func setupComparisonCtlRouter(db *gorm.DB, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	retailerRepo := repository.NewRetailerRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	svc := service.NewComparisonService(
		retailerRepo, countryRepo,
		repository.NewDeliveryDataRepository(db),
		repository.NewComparisonRepository(db),
	)
	ctl := NewComparisonController(svc, retailerRepo, countryRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	// 免去真实 JWT，直接注入用户身份
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	})

	compare := r.Group("/api/compare")
	{
		compare.POST("", ctl.Compare)
		compare.GET("/history", ctl.GetHistory)
		compare.GET("/history/:id", ctl.GetHistoryDetail)
	}
	return r
}

// ==================== 单元测试 ====================

func TestComparisonController_Compare(t *testing.T) {
	db := setupComparisonCtlTestDB(t)

	user := model.SysUser{Email: "carol@example.com", Password: "hash"}
	db.Create(&user)

	retailerA := model.Retailer{Name: "Amazon"}
	retailerB := model.Retailer{Name: "eBay"}
	db.Create(&retailerA)
	db.Create(&retailerB)

	country := model.Country{Name: "Canada", Code: "CA"}
	db.Create(&country)

	db.Create(&model.DeliveryData{
		RetailerID: retailerA.ID, CountryID: country.ID,
		Method: "Standard", Cost: "$5.99", Duration: "5-7 days",
	})
	db.Create(&model.DeliveryData{
		RetailerID: retailerB.ID, CountryID: country.ID,
		Method: "Economy", Cost: "Free", Duration: "10-14 days",
	})

	r := setupComparisonCtlRouter(db, user.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"retailers": []int64{retailerA.ID, retailerB.ID},
		"country":   country.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("比价 status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Comparison struct {
			ID      int64  `json:"id"`
			Country string `json:"country"`
			Results []struct {
				Retailer struct {
					Name string `json:"name"`
				} `json:"retailer"`
				CheapestOption *struct {
					Cost string `json:"cost"`
				} `json:"cheapestOption"`
			} `json:"results"`
		} `json:"comparison"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Comparison.ID == 0 {
		t.Error("比价结果应已保存并返回 ID")
	}
	if resp.Comparison.Country != "Canada" {
		t.Errorf("country = %q, want Canada", resp.Comparison.Country)
	}
	if len(resp.Comparison.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Comparison.Results))
	}
	if resp.Comparison.Results[0].Retailer.Name != "eBay" {
		t.Errorf("第一名 = %s, want eBay", resp.Comparison.Results[0].Retailer.Name)
	}

	// 历史记录里能查到这次比价
	req = httptest.NewRequest(http.MethodGet, "/api/compare/history", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("历史 status = %d", w.Code)
	}

	var historyResp struct {
		Comparisons []model.Comparison `json:"comparisons"`
	}
	json.Unmarshal(w.Body.Bytes(), &historyResp)
	if len(historyResp.Comparisons) != 1 {
		t.Errorf("history = %d, want 1", len(historyResp.Comparisons))
	}
}

func TestComparisonController_Validation(t *testing.T) {
	db := setupComparisonCtlTestDB(t)

	retailer := model.Retailer{Name: "Amazon"}
	db.Create(&retailer)
	country := model.Country{Name: "Canada", Code: "CA"}
	db.Create(&country)

	r := setupComparisonCtlRouter(db, 1)

	// 超过 10 个零售商
	tooMany := make([]int64, 11)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}
	body, _ := json.Marshal(map[string]interface{}{
		"retailers": tooMany,
		"country":   country.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("超限 status = %d, want 400", w.Code)
	}

	// 零售商不存在
	body, _ = json.Marshal(map[string]interface{}{
		"retailers": []int64{9999},
		"country":   country.ID,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("零售商不存在 status = %d, want 404", w.Code)
	}

	// 国家不存在
	body, _ = json.Marshal(map[string]interface{}{
		"retailers": []int64{retailer.ID},
		"country":   9999,
	})
	req = httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("国家不存在 status = %d, want 404", w.Code)
	}
}
