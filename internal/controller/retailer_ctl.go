package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

type RetailerController struct {
	retailerRepo repository.RetailerRepository
}

func NewRetailerController(retailerRepo repository.RetailerRepository) *RetailerController {
	return &RetailerController{retailerRepo: retailerRepo}
}

// GetList 获取零售商列表
// @Summary 获取零售商列表
// @Description 按名称排序返回全部零售商，支持 search 模糊搜索
// @Tags Retailer (零售商)
// @Produce json
// @Param search query string false "名称关键词"
// @Success 200 {object} map[string][]model.Retailer "零售商列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/retailers [get]
func (ctrl *RetailerController) GetList(c *gin.Context) {
	retailers, err := ctrl.retailerRepo.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"retailers": retailers})
}

// GetDetail 获取零售商详情
// @Summary 获取零售商详情
// @Description 返回零售商及其全部配送记录（含国家信息）
// @Tags Retailer (零售商)
// @Produce json
// @Param id path int true "零售商ID"
// @Success 200 {object} map[string]model.Retailer "零售商详情"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 404 {object} map[string]string "零售商不存在"
// @Router /api/retailers/{id} [get]
func (ctrl *RetailerController) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的零售商ID"})
		return
	}

	retailer, err := ctrl.retailerRepo.GetByIDWithDeliveryData(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if retailer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "零售商不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"retailer": retailer})
}

// Create 创建零售商
// @Summary 创建零售商
// @Description 创建新零售商，名称唯一
// @Tags Retailer (零售商)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RetailerCreateReq true "零售商参数"
// @Success 201 {object} map[string]model.Retailer "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/retailers [post]
func (ctrl *RetailerController) Create(c *gin.Context) {
	var req dto.RetailerCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	retailer := &model.Retailer{Name: req.Name}
	if err := ctrl.retailerRepo.Create(c.Request.Context(), retailer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"retailer": retailer})
}

// Update 更新零售商
// @Summary 更新零售商
// @Description 修改零售商名称
// @Tags Retailer (零售商)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "零售商ID"
// @Param request body dto.RetailerCreateReq true "零售商参数"
// @Success 200 {object} map[string]model.Retailer "更新结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 404 {object} map[string]string "零售商不存在"
// @Router /api/retailers/{id} [put]
func (ctrl *RetailerController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的零售商ID"})
		return
	}

	var req dto.RetailerCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	retailer, err := ctrl.retailerRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if retailer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "零售商不存在"})
		return
	}

	retailer.Name = req.Name
	if err := ctrl.retailerRepo.Update(c.Request.Context(), retailer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"retailer": retailer})
}

// Delete 删除零售商
// @Summary 删除零售商
// @Description 软删除零售商，已有配送记录不做级联处理
// @Tags Retailer (零售商)
// @Produce json
// @Security BearerAuth
// @Param id path int true "零售商ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 500 {object} map[string]string "删除失败"
// @Router /api/retailers/{id} [delete]
func (ctrl *RetailerController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的零售商ID"})
		return
	}

	if err := ctrl.retailerRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "零售商删除成功"})
}
