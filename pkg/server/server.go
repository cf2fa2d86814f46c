package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/je4/ytview/pkg/player"
)

// Display gives access to the renderer behind a view. *browser.Browser
// implements it.
type Display interface {
	Log() []string
	Screenshot(width int, height int, sigma float64) ([]byte, string, error)
}

// NewControlServer exposes view over http and registers itself as the
// observer of view. display may be nil.
func NewControlServer(addr string, name string, view *player.View, display Display, logger zLogger.ZLogger) (*ControlServer, error) {
	if view == nil {
		return nil, errors.New("no player view")
	}
	srv := &ControlServer{
		Addr:     addr,
		name:     name,
		view:     view,
		display:  display,
		upgrader: websocket.Upgrader{},
		logger:   logger,
		wsConns:  make([]*websocket.Conn, 0),
	}
	player.SetObserver(view, srv)
	return srv, nil
}

type ControlServer struct {
	Addr      string
	name      string
	view      *player.View
	display   Display
	upgrader  websocket.Upgrader
	srv       *http.Server
	logger    zLogger.ZLogger
	wg        sync.WaitGroup
	wsConns   []*websocket.Conn
	wsConnsMu sync.Mutex
}

func (srv *ControlServer) router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		AllowWebSockets:  true,
	}))
	router.GET("/status", srv.status)
	router.POST("/load", srv.load)
	router.POST("/command/:name", srv.command)
	router.POST("/layout", srv.layout)
	router.GET("/log", srv.log)
	router.GET("/screenshot", srv.screenshot)
	router.GET("/ws", srv.ws)
	return router
}

func (srv *ControlServer) Start(tlsConfig *tls.Config) error {
	srv.srv = &http.Server{
		Addr:      srv.Addr,
		Handler:   srv.router(),
		TLSConfig: tlsConfig,
	}
	srv.wg.Add(1)
	go func() {
		defer srv.wg.Done()
		if tlsConfig == nil {
			srv.logger.Info().Msgf("Starting server on http://%s", srv.Addr)
			if err := srv.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				srv.logger.Error().Err(err).Msg("Server error")
			} else {
				srv.logger.Info().Msg("Server closed")
			}
		} else {
			srv.logger.Info().Msgf("Starting server on https://%s", srv.Addr)
			if err := srv.srv.ListenAndServeTLS("", ""); !errors.Is(err, http.ErrServerClosed) {
				srv.logger.Error().Err(err).Msg("Server error")
			} else {
				srv.logger.Info().Msg("Server closed")
			}
		}
	}()
	return nil
}

func (srv *ControlServer) Stop() error {
	if srv.srv == nil {
		return errors.New("server not started")
	}
	srv.logger.Info().Msg("Stopping server")
	srv.wsConnsMu.Lock()
	for _, conn := range srv.wsConns {
		srv.logger.Info().Msgf("Closing connection %v", conn.RemoteAddr())
		if err := conn.Close(); err != nil {
			srv.logger.Error().Err(err).Msg("Failed to close connection")
		}
	}
	srv.wsConns = srv.wsConns[:0]
	srv.wsConnsMu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown server")
	}
	srv.wg.Wait()
	return nil
}
