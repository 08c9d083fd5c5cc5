package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/config"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/handler"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/migration"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/routes"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/view"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/ws"
	pkgcache "github.com/Harikowshik052/investment-deal-pipeline/pkg/cache"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/jwt"
	pkglogger "github.com/Harikowshik052/investment-deal-pipeline/pkg/logger"
	pkgredis "github.com/Harikowshik052/investment-deal-pipeline/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	cacheService := pkgcache.NewService(redisClient)

	// WebSocket hub for live board feeds
	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpireHours)*time.Hour,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db, cacheService)
	dealRepo := repository.NewDealRepository(db, cacheService)
	activityRepo := repository.NewActivityRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// Services
	views := view.NewRegistry()
	accessSvc := service.NewAccessService(boardRepo)
	authSvc := service.NewAuthService(userRepo, boardRepo, jwtManager)
	boardSvc := service.NewBoardService(boardRepo, userRepo, accessSvc, views)
	dealSvc := service.NewDealService(dealRepo, boardRepo, accessSvc, views, wsHub)
	activitySvc := service.NewActivityService(activityRepo, dealRepo, accessSvc)
	memoSvc := service.NewMemoService(memoRepo, dealRepo, accessSvc)
	commentSvc := service.NewCommentService(commentRepo, dealRepo, boardRepo, accessSvc, wsHub)
	voteSvc := service.NewVoteService(voteRepo, dealRepo, accessSvc, wsHub)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	boardHandler := handler.NewBoardHandler(boardSvc, activitySvc)
	dealHandler := handler.NewDealHandler(dealSvc, activitySvc)
	memoHandler := handler.NewMemoHandler(memoSvc)
	interactionHandler := handler.NewInteractionHandler(commentSvc, voteSvc)
	userHandler := handler.NewUserHandler(userRepo)

	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	wsHandler := handler.NewWSHandler(wsHub, accessSvc, strings.Join(allowOrigins, ","))

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.NewAuditLogger(db).Audit())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "deal-pipeline",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(
		router,
		authHandler,
		boardHandler,
		dealHandler,
		memoHandler,
		interactionHandler,
		userHandler,
		wsHandler,
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Env == "local" {
		logLevel = gormlogger.Info
	}
	return gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
}
