package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"retailer_compare_v1/internal/repository"
)

// VerifyTask 配送数据新鲜度巡检
// verified 状态的记录超过 staleAfter 没有更新时降级为 requires_verification，
// 提示运营重新核对数据
type VerifyTask struct {
	DeliveryRepo repository.DeliveryDataRepository
	Cron         *cron.Cron

	staleAfter time.Duration
}

func NewVerifyTask(deliveryRepo repository.DeliveryDataRepository) *VerifyTask {
	return &VerifyTask{
		DeliveryRepo: deliveryRepo,
		Cron:         cron.New(cron.WithSeconds()), // 支持秒级控制
		staleAfter:   30 * 24 * time.Hour,          // 30 天视为过期
	}
}

// Start 启动定时任务
func (t *VerifyTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次数据新鲜度检查...")
		t.sweepJob(ctx)
	}()

	// 每小时整点执行一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.sweepJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动数据新鲜度定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("数据新鲜度巡检任务已启动 (每小时检查一次)")
}

// 过期降级逻辑
func (t *VerifyTask) sweepJob(ctx context.Context) {
	before := time.Now().Add(-t.staleAfter)

	affected, err := t.DeliveryRepo.MarkStaleUnverified(ctx, before)
	if err != nil {
		log.Printf("[Cron] 数据新鲜度检查失败: %v", err)
		return
	}

	if affected > 0 {
		log.Printf("[Cron] %d 条配送记录降级为 requires_verification", affected)
	}
}
