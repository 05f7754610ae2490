package controller

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
	"retailer_compare_v1/internal/service"
)

// CSV 上传大小上限 10MB
const maxCSVUploadSize = 10 << 20

type DeliveryDataController struct {
	deliveryRepo repository.DeliveryDataRepository
	csvService   *service.CSVService
}

func NewDeliveryDataController(deliveryRepo repository.DeliveryDataRepository, csvService *service.CSVService) *DeliveryDataController {
	return &DeliveryDataController{
		deliveryRepo: deliveryRepo,
		csvService:   csvService,
	}
}

// GetList 获取配送记录列表
// @Summary 获取配送记录列表
// @Description 支持按零售商、国家、配送方式过滤
// @Tags DeliveryData (配送数据)
// @Produce json
// @Param retailerId query int false "零售商ID"
// @Param countryId query int false "国家ID"
// @Param method query string false "配送方式"
// @Success 200 {object} map[string][]model.DeliveryData "配送记录列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/delivery-data [get]
func (ctrl *DeliveryDataController) GetList(c *gin.Context) {
	var filter repository.DeliveryFilter
	if v := c.Query("retailerId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的零售商ID"})
			return
		}
		filter.RetailerID = id
	}
	if v := c.Query("countryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的国家ID"})
			return
		}
		filter.CountryID = id
	}
	filter.Method = c.Query("method")

	data, err := ctrl.deliveryRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveryData": data})
}

// GetDetail 获取配送记录详情
// @Summary 获取配送记录详情
// @Description 返回单条配送记录（含零售商和国家信息）
// @Tags DeliveryData (配送数据)
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} map[string]model.DeliveryData "配送记录"
// @Failure 404 {object} map[string]string "记录不存在"
// @Router /api/delivery-data/{id} [get]
func (ctrl *DeliveryDataController) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录ID"})
		return
	}

	data, err := ctrl.deliveryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "配送记录不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveryData": data})
}

// Create 创建配送记录
// @Summary 创建配送记录
// @Description 手动录入一条配送记录，状态默认为 partial
// @Tags DeliveryData (配送数据)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeliveryDataCreateReq true "配送记录参数"
// @Success 201 {object} map[string]model.DeliveryData "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/delivery-data [post]
func (ctrl *DeliveryDataController) Create(c *gin.Context) {
	var req dto.DeliveryDataCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	data := &model.DeliveryData{
		RetailerID:            req.RetailerID,
		CountryID:             req.CountryID,
		Method:                req.Method,
		Cost:                  req.Cost,
		Duration:              req.Duration,
		FreeShippingThreshold: req.FreeShippingThreshold,
		Carrier:               req.Carrier,
		AdditionalNotes:       req.AdditionalNotes,
		Status:                model.DeliveryStatusPartial,
		DataSource:            "manual",
	}
	if err := ctrl.deliveryRepo.Create(c.Request.Context(), data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deliveryData": data})
}

// Update 更新配送记录
// @Summary 更新配送记录
// @Description 按字段更新配送记录，未传的字段保持不变
// @Tags DeliveryData (配送数据)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body dto.DeliveryDataUpdateReq true "更新参数"
// @Success 200 {object} map[string]model.DeliveryData "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 404 {object} map[string]string "记录不存在"
// @Router /api/delivery-data/{id} [put]
func (ctrl *DeliveryDataController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录ID"})
		return
	}

	var req dto.DeliveryDataUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	existing, err := ctrl.deliveryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "配送记录不存在"})
		return
	}

	fields := map[string]interface{}{}
	if req.Method != "" {
		fields["method"] = req.Method
	}
	if req.Cost != "" {
		fields["cost"] = req.Cost
	}
	if req.Duration != "" {
		fields["duration"] = req.Duration
	}
	if req.FreeShippingThreshold != "" {
		fields["free_shipping_threshold"] = req.FreeShippingThreshold
	}
	if req.Carrier != "" {
		fields["carrier"] = req.Carrier
	}
	if req.AdditionalNotes != "" {
		fields["additional_notes"] = req.AdditionalNotes
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}

	if len(fields) > 0 {
		if err := ctrl.deliveryRepo.UpdateFields(c.Request.Context(), id, fields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	updated, err := ctrl.deliveryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveryData": updated})
}

// Delete 删除配送记录
// @Summary 删除配送记录
// @Description 软删除一条配送记录
// @Tags DeliveryData (配送数据)
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/delivery-data/{id} [delete]
func (ctrl *DeliveryDataController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录ID"})
		return
	}

	if err := ctrl.deliveryRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "配送记录删除成功"})
}

// BulkUpload CSV 批量导入
// @Summary CSV 批量导入配送数据
// @Description 上传 CSV 文件，按 (零售商, 国家, 配送方式) 逐行 Upsert；任何一行缺失必填字段则整体拒绝
// @Tags DeliveryData (配送数据)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV 文件（最大 10MB）"
// @Success 200 {object} dto.BulkUploadResp "导入结果"
// @Failure 400 {object} map[string]interface{} "文件无效或存在校验失败的行"
// @Failure 500 {object} map[string]string "导入失败"
// @Router /api/upload/csv [post]
func (ctrl *DeliveryDataController) BulkUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	if fileHeader.Size > maxCSVUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件超过 10MB 限制"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 CSV 文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	// 解析失败属于服务端处理失败，按 500 返回；行校验失败才是 400
	rows, err := service.ParseCSV(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CSV 解析失败: " + err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV 文件为空"})
		return
	}

	if ok, problems := service.ValidateRows(rows); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "CSV 校验失败",
			"details": problems,
		})
		return
	}

	created, updated, err := ctrl.csvService.BulkUpsert(c.Request.Context(), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.BulkUploadResp{
		Message:  "CSV 导入完成",
		ImportID: uuid.NewString(),
		Created:  created,
		Updated:  updated,
		Total:    created + updated,
	})
}
