package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/je4/ytview/pkg/browser"
	"github.com/je4/ytview/pkg/player"
	"github.com/je4/ytview/pkg/server"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error().Err(err).Msgf("invalid log level %s", cfg.LogLevel)
		level = zerolog.InfoLevel
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)
	logger.Info().Msgf("Starting youtube display with name %s", cfg.Name)
	zlogger := zLogger.ZLogger(&logger)

	br, err := browser.NewBrowser(cfg.browserFlags(), zlogger, func(s string, i ...any) {
		logger.Debug().Msgf("browser: "+s, i...)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create browser")
	}
	defer br.Close()
	br.SetTimeout(cfg.Timeout)

	opts := []player.Option{player.WithPlayerVars(cfg.PlayerVars)}
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msgf("invalid base url %s", cfg.BaseURL)
		}
		opts = append(opts, player.WithBaseURL(baseURL))
	}
	view, err := player.NewView(cfg.Frame, br, zlogger, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create player view")
	}

	srv, err := server.NewControlServer(cfg.LocalAddr, cfg.Name, view, br, zlogger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create control server")
	}
	if err := srv.Start(nil); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start control server")
	}

	switch {
	case cfg.Playlist != "":
		if err := view.LoadPlaylistID(cfg.Playlist); err != nil {
			logger.Error().Err(err).Msgf("cannot load playlist %s", cfg.Playlist)
		}
	case cfg.Video != "":
		u, err := url.Parse(cfg.Video)
		if err != nil {
			logger.Error().Err(err).Msgf("invalid video url %s", cfg.Video)
			break
		}
		if err := view.LoadURL(u); err != nil {
			logger.Error().Err(err).Msgf("cannot load video %s", cfg.Video)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Received shutdown signal")
		return srv.Stop()
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop server")
	}
}
