package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/openmat-france/openmat-api/docs"
	v1 "github.com/openmat-france/openmat-api/internal/api/handler/v1"
	"github.com/openmat-france/openmat-api/internal/api/middleware"
	"github.com/openmat-france/openmat-api/internal/cache"
	"github.com/openmat-france/openmat-api/internal/config"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/repository"
	"github.com/openmat-france/openmat-api/internal/repository/dao"
	"github.com/openmat-france/openmat-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	sessionHandler := s.initSessionHandler(db)
	adminHandler := s.initAdminHandler(db)
	likeHandler := s.initLikeHandler(db)
	s.MountHandlers(sessionHandler, adminHandler, likeHandler)

	return s
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	sessionDAO := dao.NewSessionDAO(db)
	repo := repository.NewSessionRepository(sessionDAO)
	svc := service.NewSessionService(repo)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	svc := service.NewAdminService(repo, sessionRepo)
	handler := v1.NewAdminHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initLikeHandler(db *gorm.DB) *v1.LikeHandler {
	likeDAO := dao.NewLikeDAO(db)
	repo := repository.NewLikeRepository(likeDAO)

	var counts *cache.LikeCountCache
	if s.Config.Redis != nil {
		counts = cache.NewLikeCountCache(s.Config.Redis.Addr, s.Config.Redis.Password)
	}

	svc := service.NewLikeService(repo, counts)
	handler := v1.NewLikeHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(sessionHandler *v1.SessionHandler, adminHandler *v1.AdminHandler, likeHandler *v1.LikeHandler) {
	const basePath = "/api/v1"

	submitLimiter := middleware.NewRateLimiter(1, 5)
	likeLimiter := middleware.NewRateLimiter(5, 10)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", adminHandler.HandleLogin)

		public.GET("/sessions", sessionHandler.HandleListPublicSessions)
		public.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		public.POST("/sessions", submitLimiter.Limit(), sessionHandler.HandleSubmitSession)

		public.POST("/sessions/:sessionID/likes", likeLimiter.Limit(), likeHandler.HandleAddLike)
		public.DELETE("/sessions/:sessionID/likes/:userID", likeLimiter.Limit(), likeHandler.HandleRemoveLike)
		public.GET("/sessions/:sessionID/likes/count", likeHandler.HandleGetLikeCount)
		public.GET("/users/:userID/likes", likeHandler.HandleGetLikedSessions)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	viewers := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleViewer))
	{
		viewers.GET("/sessions", sessionHandler.HandleListSessions)
		viewers.GET("/admins", adminHandler.HandleListAdmins)
		viewers.GET("/stats", adminHandler.HandleSystemStats)
		viewers.POST("/admins/password", adminHandler.HandleChangePassword)
	}

	moderators := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleModerator))
	{
		moderators.PATCH("/sessions/:sessionID", sessionHandler.HandleUpdateSession)
		moderators.POST("/sessions/:sessionID/approve", sessionHandler.HandleApproveSession)
		moderators.POST("/sessions/:sessionID/unapprove", sessionHandler.HandleUnapproveSession)
		moderators.PUT("/sessions/:sessionID/photo", sessionHandler.HandleSetPhoto)
		moderators.DELETE("/sessions/:sessionID", sessionHandler.HandleDeleteSession)
	}

	admins := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin))
	{
		admins.POST("/admins", adminHandler.HandleAddAdmin)
		admins.DELETE("/admins/:adminID", adminHandler.HandleDeleteAdmin)
		admins.GET("/export", sessionHandler.HandleExportSessions)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "OpenMat France API"
	docs.SwaggerInfo.Description = "Directory API for grappling open-mat sessions with moderated publishing."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
