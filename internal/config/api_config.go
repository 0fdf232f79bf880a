package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar     = "SPEET_API_BASE_URL"
	requestTimeoutVar = "API_REQUEST_TIMEOUT"
)

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the SPEET REST API root without a trailing slash
func (API) GetAPIBaseURL() string {
	return strings.TrimSuffix(GetEnv(apiBaseURLVar, "http://localhost:5000/api/v1"), "/")
}

// GetRequestTimeout is zero unless set; zero leaves the transport's own behaviour in place
func (API) GetRequestTimeout() time.Duration {
	return GetEnvDuration(requestTimeoutVar, 0)
}
