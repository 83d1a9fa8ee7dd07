package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/hexapawn-backend/internal/config"
	"github.com/rocketscienceinc/hexapawn-backend/internal/repository"
	"github.com/rocketscienceinc/hexapawn-backend/internal/repository/storage"
	"github.com/rocketscienceinc/hexapawn-backend/internal/service"
	"github.com/rocketscienceinc/hexapawn-backend/internal/usecase"
	"github.com/rocketscienceinc/hexapawn-backend/transport/rest"
	"github.com/rocketscienceinc/hexapawn-backend/transport/websocket"
)

// maxAnalysisDepth caps depth on the stateless search endpoint. Hexapawn games
// never last longer than this many plies.
const maxAnalysisDepth = 12

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.SessionTTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.SessionTTL)

	bot, err := service.NewBotService(logger, conf.Search)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	gameUseCase := usecase.NewGameManager(logger, playerRepo, gameRepo, bot)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.New(logger, gameUseCase, maxAnalysisDepth).Start(ctx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := websocket.New(logger, gameUseCase, conf.SessionTTL).Start(ctx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}

		return nil
	})

	err = group.Wait()

	log.Info("Application stopped")

	return err
}
