package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"genfly-deploy/internal/adapter/ci"
	"genfly-deploy/internal/adapter/hosting"
	"genfly-deploy/internal/adapter/machines"
	"genfly-deploy/internal/adapter/realtime"
	"genfly-deploy/internal/api/handler"
	"genfly-deploy/internal/api/middleware"
	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/internal/repository"
	"genfly-deploy/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, catalog *ci.Catalog, broadcaster realtime.Broadcaster, logger *zap.Logger) (*gin.Engine, service.DeployService) {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 获取数据库连接
	db := cfg.DB.(*gorm.DB)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	deployRepo := repository.NewDeployRepository(db)

	// 初始化服务商客户端
	siteProvider := hosting.NewNetlifyClient(&cfg.Deploy.Netlify)
	dispatcher := ci.NewGitHubClient(&cfg.Deploy.GitHub, catalog)
	machineClient := machines.NewFlyClient(&cfg.Deploy.Fly)

	// 初始化Service
	authService := service.NewAuthService(userRepo, &cfg.Auth, logger)
	deployService := service.NewDeployService(deployRepo, siteProvider, dispatcher, broadcaster, &cfg.Deploy, logger)
	machineService := service.NewMachineService(machineClient, &cfg.Deploy.Fly, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	deployHandler := handler.NewDeployHandler(deployService, &cfg.Deploy)
	machineHandler := handler.NewMachineHandler(machineService)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证相关(无需token)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		// 需要认证的路由
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			// 认证信息
			authed.GET("/auth/me", authHandler.GetMe)

			// 部署编排
			deployGroup := authed.Group("/deploy")
			{
				deployGroup.POST("/site", deployHandler.DeploySite)       // 触发站点部署
				deployGroup.POST("/machine", deployHandler.DeployMachine) // 触发机器部署
				deployGroup.GET("/info/:app_id", deployHandler.GetInfo)   // 查询部署状态
				deployGroup.POST("/revert", deployHandler.Revert)         // 回退到指定commit
			}

			// 远程机器操作
			machineGroup := authed.Group("/machine")
			{
				machineGroup.POST("/pull", machineHandler.Pull) // 远程拉取最新代码
			}
		}

		// 部署状态回调（由CI工作流调用，可选回调Token校验）
		v1.POST("/deploy/notify", deployHandler.Notify)
	}

	return r, deployService
}
