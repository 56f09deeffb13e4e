package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/config"
	"github.com/rocketscienceinc/resobingo-backend/internal/repository"
	"github.com/rocketscienceinc/resobingo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/resobingo-backend/internal/service"
	"github.com/rocketscienceinc/resobingo-backend/internal/usecase"
	"github.com/rocketscienceinc/resobingo-backend/transport/rest"
)

const shutdownTimeout = 10 * time.Second

var (
	ErrAddrNotFound     = errors.New("redis address string is empty")
	ErrJWTSecretMissing = errors.New("jwt secret key is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.JWTSecretKey == "" {
		return ErrJWTSecretMissing
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqlStorage, err := storage.NewSQLStorage(ctx, conf.SQL.Driver, conf.SQL.DSN)
	if err != nil {
		return fmt.Errorf("could not connect to sql storage: %w", err)
	}

	defer func() {
		if err = sqlStorage.Close(); err != nil {
			log.Error("could not close sql storage", "error", err)
		}
	}()

	if err = sqlStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sql storage: %w", err)
	}

	userRepo := repository.NewUserRepository(sqlStorage.Connection, sqlStorage.Driver)
	localBoards := repository.NewRedisBoardStore(redisStorage.Connection)

	boardOpts := []usecase.BoardOption{}
	if conf.CloudSync.Enabled {
		boardOpts = append(boardOpts,
			usecase.WithRemoteStore(repository.NewSQLBoardStore(sqlStorage.Connection, sqlStorage.Driver)),
			usecase.WithSyncQueue(conf.CloudSync.QueueSize, conf.CloudSync.Timeout),
		)
	}

	boardManager := usecase.NewBoardManager(logger, localBoards, boardOpts...)
	defer boardManager.Close()

	authService := service.NewAuthService(conf.JWTSecretKey)
	userUseCase := usecase.NewUserUseCase(userRepo)

	server := rest.NewServer(
		logger,
		conf.Session.Secret,
		authService,
		rest.NewAuthHandler(logger, conf.GoogleOAuth, conf.Session.SecureCookie, authService, userUseCase),
		rest.NewBoardHandler(logger, boardManager),
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Error("could not shutdown HTTP server", "error", err)
	}

	return nil
}
