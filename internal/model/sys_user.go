package model

// 用户套餐常量
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// SysUser 系统用户
type SysUser struct {
	BaseModel
	// 基础信息
	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希密码
	Name     string `gorm:"size:100"`

	// 套餐: free (免费), pro (付费)
	Plan string `gorm:"size:20;default:'free'"`

	// 关联关系
	Comparisons []Comparison `gorm:"foreignKey:UserID"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
