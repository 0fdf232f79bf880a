package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	CacheConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetLogLevel() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type CacheConfig interface {
	GetListCacheTTL() time.Duration
	GetPageSize() int
}

type mainConfig struct {
	EnvVars
	API
	Session
	Cache
}

func New() Config {
	return mainConfig{}
}
