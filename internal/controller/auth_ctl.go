package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/middleware"
	"retailer_compare_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户并返回 JWT Token
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册参数"
// @Success 201 {object} dto.AuthResponse "注册成功"
// @Failure 400 {object} map[string]string "参数错误/邮箱已注册"
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, token, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "注册成功",
		User:    user,
		Token:   token,
	})
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验邮箱密码并返回 JWT Token
// @Tags Auth (认证模块)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.AuthResponse "登录成功"
// @Failure 401 {object} map[string]string "邮箱或密码错误"
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "登录成功",
		User:    user,
		Token:   token,
	})
}

// GetMe 获取当前用户
// @Summary 获取当前用户
// @Description 返回当前登录用户的信息
// @Tags Auth (认证模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]dto.UserInfo "用户信息"
// @Failure 401 {object} map[string]string "未登录"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/auth/me [get]
func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	user, err := ctrl.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout 登出
// @Summary 登出
// @Description JWT 无状态，登出由客户端丢弃 Token 完成
// @Tags Auth (认证模块)
// @Produce json
// @Success 200 {object} map[string]string "登出成功"
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "登出成功"})
}
