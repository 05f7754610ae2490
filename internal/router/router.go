package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"retailer_compare_v1/internal/controller"
	"retailer_compare_v1/internal/middleware"

	_ "retailer_compare_v1/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth       *controller.AuthController
	Retailer   *controller.RetailerController
	Country    *controller.CountryController
	Delivery   *controller.DeliveryDataController
	Comparison *controller.ComparisonController
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctrls *Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.Auth.Register)
			auth.POST("/login", ctrls.Auth.Login)
			auth.POST("/logout", ctrls.Auth.Logout)
			auth.GET("/me", middleware.JWTAuth(), ctrls.Auth.GetMe)
		}

		// retailer 零售商
		retailers := api.Group("/retailers")
		{
			retailers.GET("", ctrls.Retailer.GetList)
			retailers.GET("/:id", ctrls.Retailer.GetDetail)
			retailers.POST("", middleware.JWTAuth(), ctrls.Retailer.Create)
			retailers.PUT("/:id", middleware.JWTAuth(), ctrls.Retailer.Update)
			retailers.DELETE("/:id", middleware.JWTAuth(), ctrls.Retailer.Delete)
		}

		// country 国家
		countries := api.Group("/countries")
		{
			countries.GET("", ctrls.Country.GetList)
			countries.GET("/:id", ctrls.Country.GetDetail)
			countries.POST("", middleware.JWTAuth(), ctrls.Country.Create)
		}

		// delivery-data 配送数据，写操作带审计上下文
		deliveryData := api.Group("/delivery-data")
		{
			deliveryData.GET("", ctrls.Delivery.GetList)
			deliveryData.GET("/:id", ctrls.Delivery.GetDetail)
			deliveryData.POST("", middleware.JWTAuth(), middleware.AuditContext(), ctrls.Delivery.Create)
			deliveryData.PUT("/:id", middleware.JWTAuth(), middleware.AuditContext(), ctrls.Delivery.Update)
			deliveryData.DELETE("/:id", middleware.JWTAuth(), ctrls.Delivery.Delete)
		}

		// compare 比价，需要登录（结果写入用户历史）
		compare := api.Group("/compare", middleware.JWTAuth())
		{
			compare.POST("", ctrls.Comparison.Compare)
			compare.GET("/history", ctrls.Comparison.GetHistory)
			compare.GET("/history/:id", ctrls.Comparison.GetHistoryDetail)
		}

		// upload CSV 批量导入，按用户限流
		upload := api.Group("/upload", middleware.JWTAuth())
		{
			upload.POST("/csv", middleware.UploadRateLimit(0), middleware.AuditContext(), ctrls.Delivery.BulkUpload)
		}
	}

	return r
}
