package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
)

type CountryController struct {
	countryRepo repository.CountryRepository
}

func NewCountryController(countryRepo repository.CountryRepository) *CountryController {
	return &CountryController{countryRepo: countryRepo}
}

// GetList 获取国家列表
// @Summary 获取国家列表
// @Description 按名称排序返回全部国家
// @Tags Country (国家)
// @Produce json
// @Success 200 {object} map[string][]model.Country "国家列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/countries [get]
func (ctrl *CountryController) GetList(c *gin.Context) {
	countries, err := ctrl.countryRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

// GetDetail 获取国家详情
// @Summary 获取国家详情
// @Description 返回国家及其全部配送记录（含零售商信息）
// @Tags Country (国家)
// @Produce json
// @Param id path int true "国家ID"
// @Success 200 {object} map[string]model.Country "国家详情"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 404 {object} map[string]string "国家不存在"
// @Router /api/countries/{id} [get]
func (ctrl *CountryController) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的国家ID"})
		return
	}

	country, err := ctrl.countryRepo.GetByIDWithDeliveryData(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if country == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "国家不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"country": country})
}

// Create 创建国家
// @Summary 创建国家
// @Description 手动创建国家，需要显式给出名称和两位国家码
// @Tags Country (国家)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CountryCreateReq true "国家参数"
// @Success 201 {object} map[string]model.Country "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/countries [post]
func (ctrl *CountryController) Create(c *gin.Context) {
	var req dto.CountryCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	country := &model.Country{
		Name: req.Name,
		Code: strings.ToUpper(req.Code),
	}
	if err := ctrl.countryRepo.Create(c.Request.Context(), country); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"country": country})
}
