package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"retailer_compare_v1/internal/controller"
	"retailer_compare_v1/internal/middleware"
	"retailer_compare_v1/internal/model"
	"retailer_compare_v1/internal/repository"
	"retailer_compare_v1/internal/router"
	"retailer_compare_v1/internal/service"
	"retailer_compare_v1/internal/task"
	"retailer_compare_v1/pkg/database"
)

// @title Retailer Compare API
// @version 1.0
// @description 零售商跨国配送费用比价服务
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载环境变量（文件不存在时忽略，生产环境直接用系统变量）
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] 未找到 .env 文件，使用系统环境变量")
	}
	middleware.SetJWTConfig(middleware.DefaultJWTConfig())

	// 2. 初始化数据库
	db := initDatabase()
	middleware.RegisterAuditCallbacks(db)

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 写入示例数据（SEED_ON_BOOT=true 或 ./app seed）
	runSeedIfRequested(db)

	// 5. 启动定时任务
	initTasks(deps)

	// 6. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 7. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User       repository.UserRepository
	Retailer   repository.RetailerRepository
	Country    repository.CountryRepository
	Delivery   repository.DeliveryDataRepository
	Comparison repository.ComparisonRepository
}

// Services 服务集合
type Services struct {
	Auth       *service.AuthService
	CSV        *service.CSVService
	Comparison *service.ComparisonService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "retailer_compare"),
			getEnv("DB_PORT", "5432"),
		)
	}

	return database.InitDB(dsn,
		// Manager
		&model.SysUser{},
		// Catalog
		&model.Retailer{}, &model.Country{},
		// Delivery
		&model.DeliveryData{},
		// History
		&model.Comparison{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:       repository.NewUserRepository(db),
		Retailer:   repository.NewRetailerRepository(db),
		Country:    repository.NewCountryRepository(db),
		Delivery:   repository.NewDeliveryDataRepository(db),
		Comparison: repository.NewComparisonRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		Auth:       service.NewAuthService(repos.User),
		CSV:        service.NewCSVService(repos.Retailer, repos.Country, repos.Delivery),
		Comparison: service.NewComparisonService(repos.Retailer, repos.Country, repos.Delivery, repos.Comparison),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:       controller.NewAuthController(services.Auth),
		Retailer:   controller.NewRetailerController(repos.Retailer),
		Country:    controller.NewCountryController(repos.Country),
		Delivery:   controller.NewDeliveryDataController(repos.Delivery, services.CSV),
		Comparison: controller.NewComparisonController(services.Comparison, repos.Retailer, repos.Country),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// runSeedIfRequested 按需写入示例数据
func runSeedIfRequested(db *gorm.DB) {
	wantSeed := getEnv("SEED_ON_BOOT", "") == "true"
	for _, arg := range os.Args[1:] {
		if arg == "seed" {
			wantSeed = true
		}
	}
	if !wantSeed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := service.NewSeedService(db).Run(ctx); err != nil {
		log.Fatalf("[Seed] 示例数据写入失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 配送数据新鲜度巡检
	verifyTask := task.NewVerifyTask(deps.Repos.Delivery)
	verifyTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
