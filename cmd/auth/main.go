package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	myPostgresRepo "github.com/avelorn/auth-service/internal/adapters/db/postgres"
	myHTTP "github.com/avelorn/auth-service/internal/adapters/transport/http"
	"github.com/avelorn/auth-service/internal/adapters/transport/http/dto"
	httpmw "github.com/avelorn/auth-service/internal/adapters/transport/http/middleware"
	"github.com/avelorn/auth-service/internal/app/auth/hash"
	appjwt "github.com/avelorn/auth-service/internal/app/auth/jwt"
	appsvc "github.com/avelorn/auth-service/internal/app/auth/service"
	"github.com/avelorn/auth-service/internal/infra/config"
	lg "github.com/avelorn/auth-service/internal/infra/log"
	"github.com/avelorn/auth-service/internal/infra/migrate"
	"golang.org/x/sync/errgroup"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// awaitShutdown blocks until a termination signal arrives or the server
// group stops on its own, e.g. when the listener fails at startup.
func awaitShutdown(ctx context.Context, quit <-chan os.Signal, log *zap.Logger) {
	select {
	case <-quit:
		log.Info("shutdown signal received")
	case <-ctx.Done():
		log.Warn("server stopped before shutdown signal")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("").Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	validate := validator.New()
	if err := dto.RegisterStrongPassword(validate); err != nil {
		zapLog.Fatal("register password validation", zap.Error(err))
	}

	userRepo := myPostgresRepo.NewPostgresUserRepo(db)
	jwtUtil := appjwt.NewJWTUtil(cfg)
	hasher := hash.New()
	svc := appsvc.New(userRepo, jwtUtil, hasher, validate)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))

	corsConfig := cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	handler := myHTTP.NewHandler(svc, myHTTP.NewCookieConfig(cfg), zapLog)
	handler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	awaitShutdown(gctx, quit, zapLog)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
