package model

import "gorm.io/datatypes"

// Comparison 比价历史记录
// 创建后不可变，不会被重新计算
type Comparison struct {
	BaseModel

	// 归属用户
	UserID int64    `gorm:"index;not null;comment:用户ID"`
	User   *SysUser `gorm:"foreignKey:UserID"`

	// 本次查询的零售商 ID 列表 (JSON 数组)
	Retailers datatypes.JSON `gorm:"comment:零售商ID列表"`

	// 查询的国家
	CountryID int64    `gorm:"index;not null;comment:国家ID"`
	Country   *Country `gorm:"foreignKey:CountryID"`

	// 完整的排序结果 (JSON 序列化的 ComparisonResult 列表)
	Results datatypes.JSON `gorm:"comment:排序结果"`
}

func (Comparison) TableName() string {
	return "comparisons"
}
