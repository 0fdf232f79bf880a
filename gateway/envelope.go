package gateway

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/jrsteele09/speet-admin/internal/errors"
)

// Envelope is the shape of every SPEET API response.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	// Some error responses carry the text in "error" instead of "message"
	Error string `json:"error"`
}

func (e Envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func decodeResponse(status int, body []byte, out any) error {
	body = bytes.TrimSpace(body)
	isObject := len(body) > 0 && body[0] == '{'

	var env Envelope
	var envErr error
	if isObject {
		envErr = json.Unmarshal(body, &env)
	}

	if status < 200 || status > 299 {
		return apperrors.NewRequestError(status, env.message(), nil)
	}
	if len(body) == 0 {
		return nil
	}
	if !isObject {
		// A bare payload, e.g. a top-level array
		return decodeData(status, body, out)
	}
	if envErr != nil {
		return apperrors.NewRequestError(status, "", envErr)
	}
	if env.Success != nil && !*env.Success {
		return apperrors.NewRequestError(status, env.message(), nil)
	}

	data := env.Data
	if env.Success == nil && len(data) == 0 {
		data = body
	}
	return decodeData(status, data, out)
}

func decodeData(status int, data []byte, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewRequestError(status, "", err)
	}
	return nil
}
