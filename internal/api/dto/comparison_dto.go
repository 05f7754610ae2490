package dto

import "time"

// ==================== 比价请求 ====================

// CompareRequest 比价请求
type CompareRequest struct {
	Retailers []int64 `json:"retailers" binding:"required"`
	Country   int64   `json:"country" binding:"required"`
}

// ==================== 比价结果 ====================

// RetailerSummary 零售商摘要
type RetailerSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CountrySummary 国家摘要
type CountrySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// DeliveryMethod 配送方式条目
type DeliveryMethod struct {
	Method                string `json:"method"`
	Cost                  string `json:"cost"`
	Duration              string `json:"duration"`
	FreeShippingThreshold string `json:"freeShippingThreshold,omitempty"`
	Carrier               string `json:"carrier,omitempty"`
	AdditionalNotes       string `json:"additionalNotes,omitempty"`
}

// CheapestOption 最便宜配送方式
type CheapestOption struct {
	Method   string `json:"method"`
	Cost     string `json:"cost"`
	Duration string `json:"duration"`
}

// ComparisonResult 单个零售商的比价结果
// 零售商在指定国家没有任何配送记录时 Methods 为空、CheapestOption 为 nil
type ComparisonResult struct {
	Retailer       RetailerSummary  `json:"retailer"`
	Country        CountrySummary   `json:"country"`
	Methods        []DeliveryMethod `json:"methods"`
	CheapestOption *CheapestOption  `json:"cheapestOption,omitempty"`
}

// ==================== 比价响应 ====================

// CompareResponse 比价响应
type CompareResponse struct {
	Comparison ComparisonDetail `json:"comparison"`
}

// ComparisonDetail 本次比价详情
type ComparisonDetail struct {
	ID        int64              `json:"id"`
	Retailers []int64            `json:"retailers"`
	Country   string             `json:"country"`
	Results   []ComparisonResult `json:"results"`
	CreatedAt time.Time          `json:"createdAt"`
}
