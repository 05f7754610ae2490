package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"retailer_compare_v1/internal/model"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID int64
	Email  string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID int64, email string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID: userID,
		Email:  email,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID 从 context 获取审计用户 ID
func GetAuditUserID(ctx context.Context) int64 {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UserID
	}
	return 0
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将 JWT 中的用户信息注入到 request context，供 GORM 回调使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		email := GetUserEmail(c)

		if userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), userID, email)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册 GORM 审计回调
// 只有配送记录需要审计：记录是谁录入/修正了数据。
// Create 时填充 CreatedBy/UpdatedBy，Update 时仅填充 UpdatedBy
func RegisterAuditCallbacks(db *gorm.DB) {
	db.Callback().Create().Before("gorm:create").Register("audit:create", func(tx *gorm.DB) {
		userID := GetAuditUserID(tx.Statement.Context)
		if userID == 0 {
			return
		}

		switch data := tx.Statement.Dest.(type) {
		case *model.DeliveryData:
			if data.CreatedBy == 0 {
				data.CreatedBy = userID
			}
			data.UpdatedBy = userID
		case *[]model.DeliveryData:
			for i := range *data {
				if (*data)[i].CreatedBy == 0 {
					(*data)[i].CreatedBy = userID
				}
				(*data)[i].UpdatedBy = userID
			}
		}
	})

	db.Callback().Update().Before("gorm:update").Register("audit:update", func(tx *gorm.DB) {
		userID := GetAuditUserID(tx.Statement.Context)
		if userID == 0 {
			return
		}
		if !isDeliveryUpdate(tx) {
			return
		}

		// UpdateFields 用 map 更新，直接补一列即可
		tx.Statement.SetColumn("updated_by", userID)
	})
}

// isDeliveryUpdate 判断本次更新是否落在配送记录表上
func isDeliveryUpdate(tx *gorm.DB) bool {
	switch tx.Statement.Model.(type) {
	case *model.DeliveryData, model.DeliveryData:
		return true
	}
	switch tx.Statement.Dest.(type) {
	case *model.DeliveryData, model.DeliveryData:
		return true
	}
	return false
}
