package main

import (
	"flag"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/je4/ytview/config"
	"github.com/je4/ytview/pkg/player"
)

var name = flag.String("name", "", "name of the display")
var addr = flag.String("addr", "", "address of the control server")
var debug = flag.Bool("debug", false, "debug mode")
var configPath = flag.String("config", "", "path to config file")
var video = flag.String("video", "", "youtube url to load on startup")
var playlist = flag.String("playlist", "", "playlist id to load on startup")
var headless = flag.Bool("headless", false, "run chrome without window")
var noKiosk = flag.Bool("no-kiosk", false, "disable kiosk")
var timeout = flag.Duration("timeout", 0, "timeout of a single browser command")

type YTViewConfig struct {
	LocalAddr  string            `toml:"localaddr"`
	Name       string            `toml:"name"`
	Debug      bool              `toml:"debug"`
	LogLevel   string            `toml:"loglevel"`
	Headless   bool              `toml:"headless"`
	Kiosk      bool              `toml:"kiosk"`
	Timeout    time.Duration     `toml:"timeout"`
	BaseURL    string            `toml:"baseurl"`
	Video      string            `toml:"video"`
	Playlist   string            `toml:"playlist"`
	Frame      player.Frame      `toml:"frame"`
	PlayerVars player.PlayerVars `toml:"playervars"`
	Browser    map[string]any    `toml:"browser"`
}

func loadConfig() (*YTViewConfig, error) {
	flag.Parse()
	cfg := &YTViewConfig{}
	// fill the default values
	if _, err := toml.Decode(string(config.YTViewToml), cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load default config")
	}
	if *configPath != "" {
		// enhance it with the external file
		if _, err := toml.DecodeFile(*configPath, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to load config from %s", *configPath)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Name = *name
		case "addr":
			cfg.LocalAddr = *addr
		case "debug":
			cfg.Debug = *debug
		case "video":
			cfg.Video = *video
		case "playlist":
			cfg.Playlist = *playlist
		case "headless":
			cfg.Headless = *headless
		case "no-kiosk":
			cfg.Kiosk = !*noKiosk
		case "timeout":
			cfg.Timeout = *timeout
		}
	})
	return cfg, nil
}

// browserFlags merges the chrome flags of the config with the switches.
func (cfg *YTViewConfig) browserFlags() map[string]any {
	opts := map[string]any{}
	for k, v := range cfg.Browser {
		opts[k] = v
	}
	opts["headless"] = cfg.Headless
	opts["kiosk"] = cfg.Kiosk
	opts["start-fullscreen"] = cfg.Kiosk
	return opts
}
