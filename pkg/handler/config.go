// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/sirupsen/logrus"
)

// ConfigService serves the rule set configuration commands.
type ConfigService interface {
	Describe() map[string]interface{}
	Get() (json.RawMessage, error)
	Validate(data []byte) error
	Set(ctx context.Context, data []byte) error
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// ConfigAPI is the HTTP surface of the configuration commands.
type ConfigAPI struct {
	config ConfigService
	health HealthChecker
}

// NewConfigAPI creates the config API. A nil health checker always reports
// healthy.
func NewConfigAPI(config ConfigService, health HealthChecker) *ConfigAPI {
	return &ConfigAPI{config: config, health: health}
}

// Handler returns the routed HTTP handler.
func (a *ConfigAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/"+CommandDescribe, a.handleDescribe)
	mux.HandleFunc("GET /api/"+CommandGet, a.handleGet)
	mux.HandleFunc("POST /api/"+CommandValidate, a.handleValidate)
	mux.HandleFunc("POST /api/"+CommandSet, a.handleSet)
	mux.HandleFunc("GET /healthz", a.handleHealthz)

	return withRequestLog(mux)
}

func (a *ConfigAPI) handleDescribe(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, Response{Result: a.config.Describe(), Command: CommandDescribe})
}

func (a *ConfigAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := a.config.Get()
	if err != nil {
		logrus.Errorf("%s failed: %v", CommandGet, err)
		writeFailure(w, http.StatusInternalServerError, CommandGet, err.Error())
		return
	}
	writeResponse(w, http.StatusOK, Response{Result: doc, Command: CommandGet})
}

// handleValidate answers whether the document would be accepted. A rejected
// document is a successful command whose error describes the problems.
func (a *ConfigAPI) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, asJSON, ok := readConfigBody(w, r, CommandValidate)
	if !ok {
		return
	}

	err := a.config.Validate(body)
	var verr *ruleset.ValidationError
	switch {
	case err == nil:
		writeResponse(w, http.StatusOK, Response{Result: true, Command: CommandValidate})
	case errors.As(err, &verr):
		writeResponse(w, http.StatusOK, Response{Result: false, Command: CommandValidate, Error: validationDetail(verr, asJSON)})
	default:
		logrus.Errorf("%s failed: %v", CommandValidate, err)
		writeFailure(w, http.StatusInternalServerError, CommandValidate, err.Error())
	}
}

func (a *ConfigAPI) handleSet(w http.ResponseWriter, r *http.Request) {
	body, asJSON, ok := readConfigBody(w, r, CommandSet)
	if !ok {
		return
	}

	err := a.config.Set(r.Context(), body)
	var verr *ruleset.ValidationError
	switch {
	case err == nil:
		writeResponse(w, http.StatusOK, Response{Result: true, Command: CommandSet})
	case errors.As(err, &verr):
		logrus.Infof("%s rejected: %v", CommandSet, err)
		writeResponse(w, http.StatusBadRequest, Response{Command: CommandSet, Failed: true, Error: validationDetail(verr, asJSON)})
	default:
		logrus.Errorf("%s failed: %v", CommandSet, err)
		writeFailure(w, http.StatusInternalServerError, CommandSet, err.Error())
	}
}

func (a *ConfigAPI) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.health.Check(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readConfigBody reads the document and its errors_as_json flag. The flag
// rides along in the document and is ignored by the rule set decoder.
func readConfigBody(w http.ResponseWriter, r *http.Request, command string) ([]byte, bool, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxConfigBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, http.StatusRequestEntityTooLarge, command, "request body too large")
			return nil, false, false
		}
		writeFailure(w, http.StatusBadRequest, command, "failed to read request body")
		return nil, false, false
	}

	var flags struct {
		ErrorsAsJSON bool `json:"errors_as_json"`
	}
	// Malformed documents are reported by the decoder with a proper message.
	_ = json.Unmarshal(body, &flags)

	return body, flags.ErrorsAsJSON, true
}

func validationDetail(verr *ruleset.ValidationError, asJSON bool) interface{} {
	if asJSON {
		return verr.Errors
	}
	return verr.Error()
}

func writeFailure(w http.ResponseWriter, status int, command, message string) {
	writeResponse(w, status, Response{Command: command, Failed: true, Error: message})
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("handled config request")
	})
}
