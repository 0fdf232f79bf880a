package config

import (
	"errors"
	"time"
)

const (
	sessionSecretVar = "SESSION_SECRET"
	sessionStoreVar  = "SESSION_STORE"

	// devSessionSecret is only accepted when ENV=DEV
	devSessionSecret = "speet-admin-development-secret-do-not-use"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set outside DEV")

type SessionConfig interface {
	GetSessionSecret() (string, error)
	GetSessionMaxAge() time.Duration
	GetSessionCookieSecure() bool
	GetSessionStore() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() (string, error) {
	secret := GetEnv(sessionSecretVar, "")
	if secret != "" {
		return secret, nil
	}
	if (EnvVars{}).IsDev() {
		return devSessionSecret, nil
	}
	return "", ErrMissingSessionSecret
}

func (Session) GetSessionMaxAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 12*time.Hour)
}

func (Session) GetSessionCookieSecure() bool {
	return GetEnvBool("SESSION_COOKIE_SECURE", !(EnvVars{}).IsDev())
}

func (Session) GetSessionStore() string {
	if GetEnv(sessionStoreVar, SessionStoreMemory) == SessionStoreRedis {
		return SessionStoreRedis
	}
	return SessionStoreMemory
}

func (Session) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Session) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

func (Session) GetRedisPrefix() string {
	return GetEnv("REDIS_PREFIX", "speet-admin")
}
