package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/je4/ytview/pkg/player"
)

type statusResponse struct {
	Name        string            `json:"name"`
	Ready       bool              `json:"ready"`
	State       string            `json:"state"`
	Quality     string            `json:"quality"`
	Frame       player.Frame      `json:"frame"`
	PlayerVars  player.PlayerVars `json:"playerVars"`
	Duration    string            `json:"duration"`
	CurrentTime string            `json:"currentTime"`
}

// param reads a form value, falling back to the query string.
func param(c *gin.Context, name string) string {
	if value, ok := c.GetPostForm(name); ok {
		return value
	}
	return c.Query(name)
}

func (srv *ControlServer) status(c *gin.Context) {
	resp := statusResponse{
		Name:       srv.name,
		Ready:      srv.view.Ready(),
		State:      srv.view.State().String(),
		Quality:    srv.view.Quality().String(),
		Frame:      srv.view.Frame(),
		PlayerVars: srv.view.PlayerVars(),
	}
	if resp.Ready {
		resp.Duration = srv.view.Duration()
		resp.CurrentTime = srv.view.CurrentTime()
	}
	c.JSON(http.StatusOK, resp)
}

func (srv *ControlServer) load(c *gin.Context) {
	var err error
	switch {
	case param(c, "url") != "":
		var u *url.URL
		u, err = url.Parse(param(c, "url"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("cannot parse url: %v", err)})
			return
		}
		err = srv.view.LoadURL(u)
	case param(c, "videoid") != "":
		err = srv.view.LoadVideoID(param(c, "videoid"))
	case param(c, "playlistid") != "":
		err = srv.view.LoadPlaylistID(param(c, "playlistid"))
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "one of url, videoid or playlistid required"})
		return
	}
	if err != nil {
		srv.logger.Error().Err(err).Msg("cannot load player")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (srv *ControlServer) command(c *gin.Context) {
	var err error
	switch name := c.Param("name"); name {
	case "mute":
		err = srv.view.Mute()
	case "unmute":
		err = srv.view.UnMute()
	case "play":
		err = srv.view.PlayVideo()
	case "pause":
		err = srv.view.PauseVideo()
	case "stop":
		err = srv.view.StopVideo()
	case "clear":
		err = srv.view.ClearVideo()
	case "previous":
		err = srv.view.PreviousVideo()
	case "next":
		err = srv.view.NextVideo()
	case "seek":
		seconds, perr := strconv.ParseFloat(param(c, "seconds"), 64)
		if perr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("cannot parse seconds: %v", perr)})
			return
		}
		seekAhead := true
		if str := param(c, "seekahead"); str != "" {
			if seekAhead, perr = strconv.ParseBool(str); perr != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("cannot parse seekahead: %v", perr)})
				return
			}
		}
		err = srv.view.SeekTo(seconds, seekAhead)
	default:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("unknown command %s", name)})
		return
	}
	if err != nil {
		srv.logger.Error().Err(err).Msgf("command %s failed", c.Param("name"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (srv *ControlServer) layout(c *gin.Context) {
	frame := srv.view.Frame()
	for name, target := range map[string]*int{"x": &frame.X, "y": &frame.Y, "width": &frame.Width, "height": &frame.Height} {
		str := param(c, name)
		if str == "" {
			continue
		}
		value, err := strconv.Atoi(str)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("cannot parse %s: %v", name, err)})
			return
		}
		*target = value
	}
	if err := srv.view.Layout(frame); err != nil {
		srv.logger.Error().Err(err).Msgf("cannot layout %s", frame)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (srv *ControlServer) log(c *gin.Context) {
	if srv.display == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "no display"})
		return
	}
	c.JSON(http.StatusOK, srv.display.Log())
}

func (srv *ControlServer) screenshot(c *gin.Context) {
	if srv.display == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "no display"})
		return
	}
	width, _ := strconv.Atoi(c.Query("width"))
	height, _ := strconv.Atoi(c.Query("height"))
	sigma, _ := strconv.ParseFloat(c.Query("sigma"), 64)
	buf, mime, err := srv.display.Screenshot(width, height, sigma)
	if err != nil {
		srv.logger.Error().Err(err).Msg("cannot create screenshot")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": fmt.Sprintf("cannot create screenshot: %v", err)})
		return
	}
	c.Data(http.StatusOK, mime, buf)
}
