package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

// RunApp - runs the console game with its optional event publisher and status server.
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

	terminal := console.New(logger, os.Stdin, os.Stdout)

	listeners := []usecase.RoundEventListener{terminal}

	if conf.Redis.Enabled() {
		redisClient, err := redis.Connect(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		listeners = append(listeners, redis.NewPublisher(logger, redisClient, conf.Redis.Channel))
	}

	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		view := rest.NewScoreboardView()
		listeners = append(listeners, view)

		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, view)); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run the session; it blocks on terminal input, so it gets its own goroutine
	sessionErrCh := make(chan error, 1)
	go func() {
		sessionErrCh <- runSession(ctx, logger, conf, terminal, listeners)
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-sessionErrCh:
		if errors.Is(err, apperror.ErrSessionDeclined) {
			return nil
		}

		return err
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func runSession(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	terminal *console.Console,
	listeners []usecase.RoundEventListener,
) error {
	sessionConf, err := terminal.Setup(conf.PlayerMinLength, conf.ComputerName)
	if err != nil {
		return fmt.Errorf("failed to set up session: %w", err)
	}

	session, err := usecase.ConfigureSession(logger, sessionConf, tictactoe.NewOpponentStrategy(), terminal, listeners...)
	if err != nil {
		return fmt.Errorf("failed to configure session: %w", err)
	}

	if err = session.RunSession(ctx); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}
