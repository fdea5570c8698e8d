package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "usermgmt/api/v1"
	"usermgmt/config"
	"usermgmt/dao"
	"usermgmt/internal/auth"
	myvalidator "usermgmt/internal/validator"
	"usermgmt/middleware"
	"usermgmt/model"
	"usermgmt/service"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}
	config.InitConfig(configPath)
	config.InitRedis()

	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("MySQL connect failed: %v", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}); err != nil {
		logrus.Fatalf("Migrate failed: %v", err)
	}

	userDAO := dao.NewUserDAO(db)
	userService := service.NewUserService(userDAO)
	authn := auth.NewAuthenticator(userDAO, config.GlobalConfig.Admin.Email)
	userAPI := v1.NewUserAPI(userService)

	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("phone_ru", myvalidator.IsPhoneRU); err != nil {
			logrus.Fatalf("Register validator failed: %v", err)
		}
		if err := v.RegisterValidation("userpass", myvalidator.IsUserPassword); err != nil {
			logrus.Fatalf("Register validator failed: %v", err)
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"result":  "ok",
			"message": "User Management Microservice is running",
			"version": "1.0.0",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"result": "ok", "status": "healthy"})
	})

	RegisterRoutes(r, userAPI, authn)

	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// RegisterRoutes mounts the user routes. Registration stays public;
// everything else re-authenticates per request through Basic auth.
func RegisterRoutes(r *gin.Engine, userAPI *v1.UserAPI, authn *auth.Authenticator) {
	limiter := middleware.RateLimiter(config.RedisClient, "auth", 30, middleware.AuthRateWindow)

	r.POST("/users", limiter, userAPI.Register)

	authed := r.Group("/")
	authed.Use(limiter, middleware.BasicAuth(authn))
	{
		authed.GET("/users", userAPI.List)
		authed.GET("/users/:id", userAPI.Get)
		authed.DELETE("/users/:id", userAPI.Delete)
		authed.POST("/users/:id/change-password", userAPI.AdminChangePassword)
		authed.PUT("/api/user/profile", userAPI.UpdateProfile)
		authed.PUT("/api/user/password", userAPI.ChangePassword)
	}
}
