package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 上传限流器 ====================

// UploadRateLimiter CSV 导入限流器
// 批量导入是重操作，限制每个用户的触发频率
type UploadRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalUploadLimiter = &UploadRateLimiter{}

// GetUploadLimiter 获取全局限流器
func GetUploadLimiter() *UploadRateLimiter {
	return globalUploadLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时同时记录本次执行时间
func (r *UploadRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *UploadRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// 默认上传冷却间隔
const defaultUploadInterval = 30 * time.Second

// UploadRateLimit CSV 上传限流中间件
// 按用户维度限流，需挂在 JWTAuth 之后；interval 传 0 使用默认值
func UploadRateLimit(interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = defaultUploadInterval
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("upload:user:%d", GetUserID(c))

		result := GetUploadLimiter().Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       formatRetryMessage(result.RetryAfter),
				"retry_after": int(result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 60 {
		return fmt.Sprintf("导入冷却中，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("导入冷却中，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("导入冷却中，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
