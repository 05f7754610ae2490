package model

// Retailer 零售商
// 零售商可能来自种子数据、管理端创建或 CSV 导入时自动补建，
// 一经创建不会被自动删除
type Retailer struct {
	BaseModel
	Name string `gorm:"size:255;uniqueIndex;not null;comment:零售商名称"`

	// 关联数据（一对多）
	DeliveryData []DeliveryData `gorm:"foreignKey:RetailerID"`
}

func (Retailer) TableName() string {
	return "retailers"
}
