package magnetics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one advisor call; magnetics design searches can be slow.
const DefaultTimeout = 60 * time.Second

// Client is an HTTP Advisor implementation calling a magnetics-design
// microservice.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates an advisor client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// designRequest mirrors the advisor service's request schema.
type designRequest struct {
	Corner string `json:"corner"`

	// Electrical context
	Vin  float64 `json:"vin"`
	Vout float64 `json:"vout"`
	Pout float64 `json:"pout"`
	Fsw  float64 `json:"fsw"`

	// Tank under design
	NUsed int     `json:"n_used"`
	Lm    float64 `json:"lm"`
	Lr    float64 `json:"lr"`

	// Winding currents
	IlmPeak float64 `json:"ilm_peak"`
	IlrRMS  float64 `json:"ilr_rms"`
	IlrPeak float64 `json:"ilr_peak"`
	IdRMS   float64 `json:"id_rms"`
}

// DesignTransformer asks the service for transformer designs matching the
// candidate's magnetizing inductance and turns ratio.
func (c *Client) DesignTransformer(spec config.Specification, res sweep.Result, corner string) Outcome {
	return c.post("/design/transformer", newDesignRequest(spec, res, corner))
}

// DesignResonantInductor asks the service for resonant inductor designs
// matching the candidate's Lr and winding currents.
func (c *Client) DesignResonantInductor(spec config.Specification, res sweep.Result, corner string) Outcome {
	return c.post("/design/inductor", newDesignRequest(spec, res, corner))
}

func newDesignRequest(spec config.Specification, res sweep.Result, corner string) designRequest {
	return designRequest{
		Corner:  corner,
		Vin:     spec.Vin,
		Vout:    spec.Vout,
		Pout:    spec.Pout,
		Fsw:     res.Fsw,
		NUsed:   res.Tank.NUsed,
		Lm:      res.Tank.Lm,
		Lr:      res.Tank.Lr,
		IlmPeak: res.Stress.IlmPeak,
		IlrRMS:  res.Stress.IlrRMS,
		IlrPeak: res.Stress.IlrPeak,
		IdRMS:   res.Stress.IdRMS,
	}
}

// post performs one advisor call. Transport or decode problems yield a fail
// outcome with the error recorded; the advisor contract never raises.
func (c *Client) post(path string, req designRequest) Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return failOutcome(fmt.Sprintf("failed to encode advisor request: %v", err))
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("magnetics advisor unreachable",
			zap.String("op", "magnetics.Client.post"),
			zap.String("path", path),
			zap.Error(err),
		)
		return failOutcome(fmt.Sprintf("advisor request failed: %v", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failOutcome(fmt.Sprintf("failed to read advisor response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return failOutcome(fmt.Sprintf("advisor returned HTTP %d", resp.StatusCode))
	}

	var outcome Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return failOutcome(fmt.Sprintf("failed to decode advisor response: %v", err))
	}
	if outcome.Status == "" {
		outcome.Status = StatusFail
		outcome.Errors = append(outcome.Errors, "advisor response missing status")
	}
	return outcome
}

func failOutcome(msg string) Outcome {
	return Outcome{Status: StatusFail, Errors: []string{msg}}
}
