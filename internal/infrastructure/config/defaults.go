package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRefreshInterval = time.Hour
	DefaultFetchTimeout    = 10 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
)
