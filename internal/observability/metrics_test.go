package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

func TestMetrics_CountsMutationsAndFailures(t *testing.T) {
	m := NewMetrics(nil)

	m.RosterMutation("set_captain", "success")
	m.RosterMutation("set_captain", "success")
	m.RosterMutation("swap_starter", "invalid")
	m.BackendFailure("list_roster_by_team")

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("set_captain", "success")); got != 2 {
		t.Fatalf("set_captain success=%v want 2", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("swap_starter", "invalid")); got != 1 {
		t.Fatalf("swap_starter invalid=%v want 1", got)
	}
	if got := testutil.ToFloat64(m.backendFailures.WithLabelValues("list_roster_by_team")); got != 1 {
		t.Fatalf("backend failures=%v want 1", got)
	}
}

func TestMetrics_ObserveCircuit(t *testing.T) {
	m := NewMetrics(nil)

	m.ObserveCircuit("backend_rest", resilience.CircuitStateClosed, resilience.CircuitStateOpen)
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("backend_rest")); got != 1 {
		t.Fatalf("open gauge=%v want 1", got)
	}

	m.ObserveCircuit("backend_rest", resilience.CircuitStateHalfOpen, resilience.CircuitStateClosed)
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("backend_rest")); got != 0 {
		t.Fatalf("closed gauge=%v want 0", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(func() int { return 3 })
	m.RosterMutation("replace_player", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`fantasy_roster_roster_mutations_total{operation="replace_player",outcome="success"} 1`,
		`fantasy_roster_active_sessions 3`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}
