package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/middleware"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

// 业务错误
var (
	ErrEmailTaken         = errors.New("该邮箱已注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

const bcryptCost = 10

// AuthService 认证服务
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新用户并签发 Token
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*dto.UserInfo, string, error) {
	// 1. 邮箱查重
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	// 2. 哈希密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	// 3. 入库
	user := &model.SysUser{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Plan:     model.PlanFree,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// 4. 签发 Token
	token, err := middleware.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return toUserInfo(user), token, nil
}

// Login 校验邮箱密码并签发 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.UserInfo, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// 用户不存在和密码错误返回同一个错误，不泄露邮箱是否注册
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return toUserInfo(user), token, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserInfo(user), nil
}

func toUserInfo(user *model.SysUser) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Plan:      user.Plan,
		CreatedAt: user.CreatedAt,
	}
}
