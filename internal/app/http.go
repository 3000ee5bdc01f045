package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thenamakop/taskboard/internal/cache"
	"github.com/thenamakop/taskboard/internal/config"
	v1 "github.com/thenamakop/taskboard/internal/delivery/http/v1"
	"github.com/thenamakop/taskboard/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()

	sessionService := services.NewSessionService(
		globalLogger,
		globalPostgresPool,
		cfg.Session.TTL,
	)
	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		sessionService,
	)
	taskCache := cache.NewTaskCache(globalRedisClient, cfg.Redis.CacheTTL)
	taskService := services.NewTaskService(
		globalLogger,
		globalPostgresPool,
		taskCache,
	)
	handler := v1.New(
		globalLogger,
		authService,
		sessionService,
		taskService,
		cfg.Web.Dir,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api")

	authRouter := api.Group("/auth")
	authRouter.POST("/signup", handler.HandleSignup)
	authRouter.POST("/login", handler.HandleLogin)
	authRouter.GET("/me", handler.HandleAuthMiddleware, handler.HandleMe)
	authRouter.POST("/logout", handler.HandleAuthMiddleware, handler.HandleLogout)

	tasksRouter := api.Group("/tasks", handler.HandleAuthMiddleware)
	tasksRouter.GET("", handler.HandleGetTasks)
	tasksRouter.POST("", handler.HandleCreateTask)
	tasksRouter.PATCH("/:id", handler.HandleUpdateTask)
	tasksRouter.DELETE("/:id", handler.HandleDeleteTask)

	registerPageRoutes(router, handler)
}

// Page navigation carries the session as a cookie; everything but
// the login and signup views sits behind the page gate.
func registerPageRoutes(router *gin.Engine, handler v1.Handler) {
	router.GET("/login.html", handler.ServePage("login.html"))
	router.GET("/signup.html", handler.ServePage("signup.html"))

	pages := router.Group("", handler.HandlePageMiddleware)
	pages.GET("/", handler.ServePage("index.html"))
	for _, name := range []string{
		"index.html",
		"notifications.html",
		"roadmap.html",
		"analytics.html",
	} {
		pages.GET("/"+name, handler.ServePage(name))
	}
}
