package config

import "time"

// Config is the full server configuration, parsed from the environment
// with the STORE prefix (see cmd/server).
type Config struct {
	Web     Web
	Cors    Cors
	DB      DB
	Session Session
	Rate    Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:store"`
	DisableTLS bool   `conf:"default:true"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Rate bounds login attempts per client.
type Rate struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:1s"`
	Expiry   int           `conf:"default:10"`
}
