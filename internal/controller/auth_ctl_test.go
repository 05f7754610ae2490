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

func setupAuthCtlTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.SysUser{})
	return db
}

func setupAuthCtlRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	ctl := NewAuthController(service.NewAuthService(repository.NewUserRepository(db)))

	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
		auth.POST("/logout", ctl.Logout)
		auth.GET("/me", middleware.JWTAuth(), ctl.GetMe)
	}
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestAuthController_RegisterLoginMe(t *testing.T) {
	db := setupAuthCtlTestDB(t)
	r := setupAuthCtlRouter(db)

	// 注册
	w := postJSON(r, "/api/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
		"name":     "Alice",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册 status = %d, body = %s", w.Code, w.Body.String())
	}

	var registerResp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &registerResp)
	if registerResp.Token == "" {
		t.Fatal("注册响应应包含 token")
	}

	// 重复注册
	w = postJSON(r, "/api/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复注册 status = %d, want 400", w.Code)
	}

	// 登录
	w = postJSON(r, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("登录 status = %d, body = %s", w.Code, w.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &loginResp)

	// 带 Token 获取当前用户
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var meResp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	json.Unmarshal(recorder.Body.Bytes(), &meResp)
	if meResp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", meResp.User.Email)
	}

	// 不带 Token
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	recorder = httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("无 Token status = %d, want 401", recorder.Code)
	}
}

func TestAuthController_LoginWrongPassword(t *testing.T) {
	db := setupAuthCtlTestDB(t)
	r := setupAuthCtlRouter(db)

	postJSON(r, "/api/auth/register", map[string]string{
		"email":    "bob@example.com",
		"password": "secret123",
	})

	w := postJSON(r, "/api/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错误密码 status = %d, want 401", w.Code)
	}
}
