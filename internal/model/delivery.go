package model

// DeliveryData 状态常量
const (
	DeliveryStatusVerified             = "verified"              // 已核实
	DeliveryStatusPartial              = "partial"               // 部分数据
	DeliveryStatusRequiresVerification = "requires_verification" // 待核实
)

// DeliveryData 配送记录
// (RetailerID, CountryID, Method) 三元组为自然键，upsert 以此为准
type DeliveryData struct {
	BaseModel

	// 关联零售商/国家
	RetailerID int64     `gorm:"not null;uniqueIndex:idx_retailer_country_method;comment:零售商ID"`
	Retailer   *Retailer `gorm:"foreignKey:RetailerID"`
	CountryID  int64     `gorm:"not null;uniqueIndex:idx_retailer_country_method;comment:国家ID"`
	Country    *Country  `gorm:"foreignKey:CountryID"`

	// 配送方式信息
	Method string `gorm:"size:100;not null;uniqueIndex:idx_retailer_country_method;comment:配送方式"`
	// 费用为自由格式字符串，保留原始币种符号，如 "$12.99"、"8.99 $"、"Free"
	Cost     string `gorm:"size:100;not null;comment:费用(原始字符串)"`
	Duration string `gorm:"size:100;not null;comment:时效，如 5-7 business days"`

	// 可选字段
	FreeShippingThreshold string `gorm:"size:100;comment:免邮门槛"`
	Carrier               string `gorm:"size:100;comment:承运商"`
	AdditionalNotes       string `gorm:"size:500;comment:备注"`

	// 数据状态: verified / partial / requires_verification
	Status string `gorm:"size:30;default:'partial';comment:数据状态"`
	// 数据来源标记，如 csv_import / manual / seed
	DataSource string `gorm:"size:50;comment:数据来源"`

	// 审计字段，由 GORM 回调自动填充
	CreatedBy int64 `gorm:"comment:创建人ID" json:"-"`
	UpdatedBy int64 `gorm:"comment:更新人ID" json:"-"`
}

func (DeliveryData) TableName() string {
	return "delivery_data"
}
