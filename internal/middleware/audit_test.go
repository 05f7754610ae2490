package middleware

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retailer_compare_v1/internal/model"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Retailer{}, &model.Country{}, &model.DeliveryData{})
	RegisterAuditCallbacks(db)
	return db
}

func TestAuditCallbacks_FillDeliveryData(t *testing.T) {
	db := setupAuditTestDB(t)
	ctx := WithAuditInfo(context.Background(), 42, "alice@example.com")

	data := model.DeliveryData{
		RetailerID: 1, CountryID: 1, Method: "Standard",
		Cost: "$5.99", Duration: "5-7 days",
	}
	if err := db.WithContext(ctx).Create(&data).Error; err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if data.CreatedBy != 42 || data.UpdatedBy != 42 {
		t.Errorf("created_by/updated_by = %d/%d, want 42/42", data.CreatedBy, data.UpdatedBy)
	}

	// 另一个用户用 map 更新，只改 updated_by
	otherCtx := WithAuditInfo(context.Background(), 7, "bob@example.com")
	err := db.WithContext(otherCtx).
		Model(&model.DeliveryData{}).
		Where("id = ?", data.ID).
		Updates(map[string]interface{}{"cost": "$6.99"}).Error
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	var reloaded model.DeliveryData
	db.First(&reloaded, data.ID)
	if reloaded.CreatedBy != 42 {
		t.Errorf("created_by = %d, 更新不应改动创建人", reloaded.CreatedBy)
	}
	if reloaded.UpdatedBy != 7 {
		t.Errorf("updated_by = %d, want 7", reloaded.UpdatedBy)
	}
}

func TestAuditCallbacks_SkipWithoutAuditInfo(t *testing.T) {
	db := setupAuditTestDB(t)

	// 无审计信息（种子数据、定时任务）时不填充
	data := model.DeliveryData{
		RetailerID: 1, CountryID: 2, Method: "Express",
		Cost: "$12.99", Duration: "2-3 days",
	}
	if err := db.Create(&data).Error; err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if data.CreatedBy != 0 || data.UpdatedBy != 0 {
		t.Errorf("created_by/updated_by = %d/%d, want 0/0", data.CreatedBy, data.UpdatedBy)
	}

	// 其他模型不受审计回调影响
	retailer := model.Retailer{Name: "Amazon"}
	ctx := WithAuditInfo(context.Background(), 42, "alice@example.com")
	if err := db.WithContext(ctx).Create(&retailer).Error; err != nil {
		t.Fatalf("创建零售商失败: %v", err)
	}
}
