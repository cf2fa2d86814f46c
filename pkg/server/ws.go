package server

import (
	"time"

	"emperror.dev/errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/je4/ytview/pkg/event"
	"github.com/je4/ytview/pkg/player"
)

// addWSConn sends the greeting and registers c in one step, so c receives
// every broadcast after the greeting.
func (srv *ControlServer) addWSConn(c *websocket.Conn, greeting *event.Event) error {
	srv.wsConnsMu.Lock()
	defer srv.wsConnsMu.Unlock()
	if err := c.WriteJSON(greeting); err != nil {
		return errors.Wrap(err, "cannot greet client")
	}
	srv.wsConns = append(srv.wsConns, c)
	return nil
}

func (srv *ControlServer) wsConnCount() int {
	srv.wsConnsMu.Lock()
	defer srv.wsConnsMu.Unlock()
	return len(srv.wsConns)
}

func (srv *ControlServer) closeWSConn(c *websocket.Conn) {
	srv.wsConnsMu.Lock()
	defer srv.wsConnsMu.Unlock()
	for i, conn := range srv.wsConns {
		if conn == c {
			srv.wsConns = append(srv.wsConns[:i], srv.wsConns[i+1:]...)
			if err := c.Close(); err != nil {
				srv.logger.Error().Err(err).Msg("Failed to close connection")
			}
			break
		}
	}
}

func (srv *ControlServer) upgrade(ctx *gin.Context, pingInterval time.Duration) (*websocket.Conn, error) {
	conn, err := srv.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upgrade connection")
	}
	conn.SetPongHandler(func(appData string) error {
		srv.logger.Debug().Msgf("Received pong from client %s: %s", ctx.Request.RemoteAddr, appData)
		return nil
	})
	go func() {
		for {
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				srv.logger.Debug().Err(err).Msg("stopping ping")
				return
			}
			select {
			case <-time.After(pingInterval):
			case <-ctx.Request.Context().Done():
				return
			}
		}
	}()
	return conn, nil
}

// ws streams the player events to the client until it disconnects.
func (srv *ControlServer) ws(ctx *gin.Context) {
	conn, err := srv.upgrade(ctx, 10*time.Second)
	if err != nil {
		srv.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}
	evt, err := event.NewEvent(event.NewGenericStringMessage(event.TypeStringMessage, "connected"), srv.name)
	if err != nil {
		srv.logger.Error().Err(err).Msg("cannot create event")
		conn.Close()
		return
	}
	if err := srv.addWSConn(conn, evt); err != nil {
		srv.logger.Error().Err(err).Msg("cannot register client")
		conn.Close()
		return
	}
	defer srv.closeWSConn(conn)

	// clients only listen, reading detects the disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(errors.Cause(err), websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				srv.logger.Debug().Err(err).Msg("connection closed by client")
			} else {
				srv.logger.Debug().Err(err).Msg("connection lost")
			}
			return
		}
	}
}

func (srv *ControlServer) broadcast(t event.EventType, msg string) {
	evt, err := event.NewEvent(event.NewGenericStringMessage(t, msg), srv.name)
	if err != nil {
		srv.logger.Error().Err(err).Msgf("cannot create %s event", t)
		return
	}
	srv.wsConnsMu.Lock()
	defer srv.wsConnsMu.Unlock()
	for _, conn := range srv.wsConns {
		if err := conn.WriteJSON(evt); err != nil {
			srv.logger.Error().Err(err).Msgf("cannot send %s to %v", evt, conn.RemoteAddr())
		}
	}
}

func (srv *ControlServer) OnReady(*player.View) {
	srv.broadcast(event.TypeReady, "")
}

func (srv *ControlServer) OnStateChange(_ *player.View, state player.PlayerState) {
	srv.broadcast(event.TypeStateChange, state.String())
}

func (srv *ControlServer) OnQualityChange(_ *player.View, quality player.PlaybackQuality) {
	srv.broadcast(event.TypeQualityChange, quality.String())
}

func (srv *ControlServer) OnError(_ *player.View, playerError player.PlayerError) {
	srv.broadcast(event.TypePlayerError, playerError.String())
}

var _ player.Observer = (*ControlServer)(nil)
