package dto

// ==================== 配送记录 CRUD ====================

// DeliveryDataCreateReq 创建配送记录请求
type DeliveryDataCreateReq struct {
	RetailerID            int64  `json:"retailerId" binding:"required"`
	CountryID             int64  `json:"countryId" binding:"required"`
	Method                string `json:"method" binding:"required"`
	Cost                  string `json:"cost" binding:"required"`
	Duration              string `json:"duration" binding:"required"`
	FreeShippingThreshold string `json:"freeShippingThreshold"`
	Carrier               string `json:"carrier"`
	AdditionalNotes       string `json:"additionalNotes"`
}

// DeliveryDataUpdateReq 更新配送记录请求
type DeliveryDataUpdateReq struct {
	Method                string `json:"method"`
	Cost                  string `json:"cost"`
	Duration              string `json:"duration"`
	FreeShippingThreshold string `json:"freeShippingThreshold"`
	Carrier               string `json:"carrier"`
	AdditionalNotes       string `json:"additionalNotes"`
	Status                string `json:"status" binding:"omitempty,oneof=verified partial requires_verification"`
}

// ==================== CSV 上传 ====================

// BulkUploadResp CSV 上传响应
type BulkUploadResp struct {
	Message  string `json:"message"`
	ImportID string `json:"importId"`
	Created  int    `json:"created"`
	Updated  int    `json:"updated"`
	Total    int    `json:"total"`
}

// ==================== 零售商 / 国家 ====================

// RetailerCreateReq 创建/更新零售商请求
type RetailerCreateReq struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CountryCreateReq 创建国家请求
type CountryCreateReq struct {
	Name string `json:"name" binding:"required,max=255"`
	Code string `json:"code" binding:"required,len=2"`
}
