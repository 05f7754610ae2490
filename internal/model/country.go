package model

// Country 国家
// Code 为两位国家码，创建时分配一次，之后不会被隐式修改
type Country struct {
	BaseModel
	Name string `gorm:"size:255;uniqueIndex;not null;comment:国家名称"`
	Code string `gorm:"size:2;uniqueIndex;not null;comment:两位国家码"`

	// 关联数据（一对多）
	DeliveryData []DeliveryData `gorm:"foreignKey:CountryID"`
}

func (Country) TableName() string {
	return "countries"
}
