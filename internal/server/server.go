// Package server exposes the sweep engine over a small JSON HTTP API. The
// result sequence it returns is read-only for consumers; the rendering layer
// on top of it is out of scope here.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"github.com/iwvelando/llc-sweeper/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the sweep API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Sweep API endpoint: YAML specification in, ranked candidates out
	mux.HandleFunc("/api/sweep", h.handleSweep)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type sweepResponse struct {
	Count    int            `json:"count"`
	Results  []sweep.Result `json:"results"`
	Diverse  []sweep.Result `json:"diverse"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

func (h *handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSweep"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	var spec config.Specification
	if err := yaml.Unmarshal(body, &spec); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading specification, %v", err))
		return
	}

	if err := spec.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	spec = spec.Normalize()

	conf := config.Configuration{Design: spec}
	warnings := conf.ValidateConfiguration()

	topN := constants.DefaultTopN
	if v := r.URL.Query().Get("top"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid top parameter %q", v))
			return
		}
		topN = parsed
	}

	results := sweep.Run(h.logger, spec)
	if len(results) == 0 {
		// The empty sweep is a distinguishable condition, not a server fault.
		h.respondError(w, http.StatusUnprocessableEntity, "sweep produced no viable designs")
		return
	}

	elapsed := time.Since(start)
	response := sweepResponse{
		Count:    len(results),
		Results:  results,
		Diverse:  sweep.DiverseTop(results, topN),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("sweep computed",
		zap.String("op", op),
		zap.Int("candidates", response.Count),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Error("sweep request failed",
		zap.String("op", "server.handleSweep"),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
