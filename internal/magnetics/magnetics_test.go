package magnetics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iwvelando/llc-sweeper/internal/config"
	"github.com/iwvelando/llc-sweeper/internal/sweep"
	"go.uber.org/zap"
)

func testSpec() config.Specification {
	return config.Example()
}

func testResult() sweep.Result {
	return sweep.Result{
		Tank: sweep.Tank{
			NUsed: 4,
			Lr:    27e-6,
			Cr:    91e-9,
			Lm:    243e-6,
		},
		Fsw: 100e3,
	}
}

func TestUnavailableAdvisor(t *testing.T) {
	var advisor Advisor = Unavailable{}

	outcomes := []Outcome{
		advisor.DesignTransformer(testSpec(), testResult(), CornerFullLoad),
		advisor.DesignResonantInductor(testSpec(), testResult(), CornerLightLoad),
	}
	for i, outcome := range outcomes {
		if outcome.Status != StatusUnavailable {
			t.Errorf("outcome %d status = %q, expected %q", i, outcome.Status, StatusUnavailable)
		}
		if len(outcome.Errors) != 0 {
			t.Errorf("outcome %d carries errors %v; unavailability is not an error", i, outcome.Errors)
		}
	}
}

func TestClientParsesOutcome(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var gotPath string
	var gotReq map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		outcome := Outcome{
			Status: StatusOK,
			Designs: []Design{
				{Core: "PQ32/30", Material: "3C95", PrimaryTurns: 16, SecondaryTurns: 4},
			},
			Metrics: Metrics{TotalLossW: 2.4, CoreLossW: 1.1, CopperLossW: 1.3, EstimatedTempRise: 38.0},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(outcome)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second, logger)
	outcome := client.DesignTransformer(testSpec(), testResult(), CornerFullLoad)

	if gotPath != "/design/transformer" {
		t.Errorf("request path = %q, expected /design/transformer", gotPath)
	}
	if gotReq["corner"] != CornerFullLoad {
		t.Errorf("request corner = %v, expected %q", gotReq["corner"], CornerFullLoad)
	}
	if gotReq["n_used"] != float64(4) {
		t.Errorf("request n_used = %v, expected 4", gotReq["n_used"])
	}

	if outcome.Status != StatusOK {
		t.Fatalf("outcome status = %q, expected ok; errors: %v", outcome.Status, outcome.Errors)
	}
	if len(outcome.Designs) != 1 || outcome.Designs[0].Core != "PQ32/30" {
		t.Errorf("outcome designs = %+v, expected one PQ32/30 design", outcome.Designs)
	}
	if outcome.Metrics.TotalLossW != 2.4 {
		t.Errorf("outcome total loss = %g, expected 2.4", outcome.Metrics.TotalLossW)
	}
}

func TestClientInductorPath(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(Outcome{Status: StatusOK})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second, zap.NewNop())
	if outcome := client.DesignResonantInductor(testSpec(), testResult(), CornerFullLoad); outcome.Status != StatusOK {
		t.Fatalf("outcome status = %q, expected ok", outcome.Status)
	}
	if gotPath != "/design/inductor" {
		t.Errorf("request path = %q, expected /design/inductor", gotPath)
	}
}

func TestClientServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second, zap.NewNop())
	outcome := client.DesignTransformer(testSpec(), testResult(), CornerFullLoad)
	if outcome.Status != StatusFail {
		t.Errorf("outcome status = %q, expected fail", outcome.Status)
	}
	if len(outcome.Errors) == 0 {
		t.Error("fail outcome must carry an error description")
	}
}

func TestClientUnreachableService(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // deliberately dead endpoint

	client := NewClient(ts.URL, time.Second, zap.NewNop())
	outcome := client.DesignTransformer(testSpec(), testResult(), CornerFullLoad)
	if outcome.Status != StatusFail {
		t.Errorf("outcome status = %q, expected fail", outcome.Status)
	}
}

func TestClientMissingStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"top_designs": []}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second, zap.NewNop())
	outcome := client.DesignTransformer(testSpec(), testResult(), CornerFullLoad)
	if outcome.Status != StatusFail {
		t.Errorf("outcome status = %q, expected fail for missing status", outcome.Status)
	}
}
