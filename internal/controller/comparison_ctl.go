package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retailer_compare_v1/internal/api/dto"
	"retailer_compare_v1/internal/middleware"
	"retailer_compare_v1/internal/repository"
	"retailer_compare_v1/internal/service"
)

// 单次比价的零售商数量上限
const maxCompareRetailers = 10

type ComparisonController struct {
	comparisonService *service.ComparisonService
	retailerRepo      repository.RetailerRepository
	countryRepo       repository.CountryRepository
}

func NewComparisonController(
	comparisonService *service.ComparisonService,
	retailerRepo repository.RetailerRepository,
	countryRepo repository.CountryRepository,
) *ComparisonController {
	return &ComparisonController{
		comparisonService: comparisonService,
		retailerRepo:      retailerRepo,
		countryRepo:       countryRepo,
	}
}

// Compare 比价
// @Summary 比较多个零售商的配送方案
// @Description 对指定国家比较 1-10 个零售商的配送费用，结果按最便宜费用升序排列，并保存到历史记录
// @Tags Comparison (比价)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompareRequest true "比价参数"
// @Success 200 {object} dto.CompareResponse "比价结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 404 {object} map[string]string "零售商或国家不存在"
// @Router /api/compare [post]
func (ctrl *ComparisonController) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if len(req.Retailers) == 0 || len(req.Retailers) > maxCompareRetailers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "零售商数量必须在 1-10 之间"})
		return
	}

	// 校验零售商和国家都存在
	count, err := ctrl.retailerRepo.CountByIDs(c.Request.Context(), req.Retailers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count != int64(len(req.Retailers)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "部分零售商不存在"})
		return
	}

	country, err := ctrl.countryRepo.GetByID(c.Request.Context(), req.Country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if country == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "国家不存在"})
		return
	}

	results, err := ctrl.comparisonService.Compare(c.Request.Context(), req.Retailers, req.Country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	comparison, err := ctrl.comparisonService.SaveComparison(c.Request.Context(), userID, req.Retailers, req.Country, results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CompareResponse{
		Comparison: dto.ComparisonDetail{
			ID:        comparison.ID,
			Retailers: req.Retailers,
			Country:   country.Name,
			Results:   results,
			CreatedAt: comparison.CreatedAt,
		},
	})
}

// GetHistory 获取比价历史
// @Summary 获取比价历史
// @Description 返回当前用户的全部比价记录，按时间倒序
// @Tags Comparison (比价)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]model.Comparison "比价历史"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/compare/history [get]
func (ctrl *ComparisonController) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	comparisons, err := ctrl.comparisonService.GetUserComparisons(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

// GetHistoryDetail 获取单条比价记录
// @Summary 获取单条比价记录
// @Description 按 ID 返回比价记录，只能查看本人的记录
// @Tags Comparison (比价)
// @Produce json
// @Security BearerAuth
// @Param id path int true "比价记录ID"
// @Success 200 {object} map[string]model.Comparison "比价记录"
// @Failure 404 {object} map[string]string "记录不存在"
// @Router /api/compare/history/{id} [get]
func (ctrl *ComparisonController) GetHistoryDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的记录ID"})
		return
	}

	userID := middleware.GetUserID(c)
	comparison, err := ctrl.comparisonService.GetComparisonByID(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if comparison == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "比价记录不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}
