package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider

	version string
	logger  *zap.Logger
}

func NewApp(logger *zap.Logger, version string) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger, version: version}
}

func (s *App) initServiceProvider() (err error) {
	// провайдер паникует на неверной конфигурации, здесь это становится ошибкой
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	s.ServiceProvider = newServiceProvider(s.logger, s.version)
	s.ServiceProvider.HTTPCfg()
	s.ServiceProvider.Router(context.Background())
	return nil
}

// Run Поднимает HTTP сервер и уборщик сессий, работает до отмены ctx
func (s *App) Run(ctx context.Context) error {
	if err := s.initServiceProvider(); err != nil {
		return err
	}

	sp := s.ServiceProvider
	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sp.ArcadeService().Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
