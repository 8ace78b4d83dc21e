// Package gateway is a development implementation of the kotoba API gateway:
// accounts, password recovery, profiles, learning content and an
// OpenAI-compatible tutor endpoint, all held in memory.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/gateway/config"
	"github.com/dmitrijs2005/kotoba/internal/gateway/content"
	"github.com/dmitrijs2005/kotoba/internal/gateway/handler"
	"github.com/dmitrijs2005/kotoba/internal/gateway/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	server *http.Server
}

func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	secret := []byte(cfg.JWTSecret)

	userService := users.NewService(users.NewMemoryRepository(), users.Options{
		Secret:   secret,
		TokenTTL: cfg.TokenTTL.Duration,
		OTPTTL:   cfg.OTPTTL.Duration,
		OTPCode:  cfg.OTPCode,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggerMiddleware(logger))

	setupRoutes(router, secret,
		handler.NewAuthHandler(userService, secret, logger),
		handler.NewProfileHandler(userService, logger),
		handler.NewContentHandler(content.NewCatalog()),
		handler.NewChatHandler(),
	)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	return &App{config: cfg, logger: logger, router: router, server: srv}
}

func setupRoutes(
	router *gin.Engine,
	secret []byte,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	contentHandler *handler.ContentHandler,
	chatHandler *handler.ChatHandler,
) {
	api := router.Group("/api/v1")
	{
		api.GET("/health", handler.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/otp/send", authHandler.SendOTP)
			authGroup.POST("/otp/verify", authHandler.VerifyOTP)
			authGroup.POST("/password", authHandler.ChangePassword)
		}

		userGroup := api.Group("/users/:id", handler.AuthMiddleware(secret, handler.Fail), handler.SelfOnly())
		{
			userGroup.GET("/profile", profileHandler.Get)
			userGroup.PUT("/profile", profileHandler.Update)
			userGroup.PUT("/avatar", profileHandler.UploadAvatar)
		}
		api.GET("/avatars/:id", profileHandler.Avatar)

		api.GET("/vocabulary", contentHandler.Vocabulary)
		api.GET("/grammar", contentHandler.Grammar)
		api.GET("/reading", contentHandler.Readings)
		api.GET("/reading/:id", contentHandler.Reading)

		ai := api.Group("/ai", handler.AuthMiddleware(secret, handler.AIFail))
		{
			ai.POST("/chat/completions", chatHandler.Completions)
		}
	}
}

// Router exposes the handler, e.g. for httptest.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Run serves until ctx is done or the listener fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.logger.Info("gateway starting", zap.String("addr", a.config.Addr))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case serverErr = <-errChan:
		a.logger.Error("gateway failed", zap.Error(serverErr))
	case <-ctx.Done():
		a.logger.Info("gateway stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		return errors.Join(serverErr, err)
	}
	return serverErr
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.server.Shutdown(ctx)
}
