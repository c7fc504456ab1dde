package modelrun

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mbo_model/pkg/core/assumptions"
)

// Posted deals must get the same defaults pass as file loads: a payload
// with horizon, scenario and amortization mode omitted still runs.
func TestHandleRunDefaultsOmittedFields(t *testing.T) {
	raw, err := json.Marshal(assumptions.Demo())
	if err != nil {
		t.Fatalf("marshal demo deal: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal demo deal: %v", err)
	}
	delete(payload, "horizon_years")
	delete(payload, "scenario")
	if fin, ok := payload["financing"].(map[string]interface{}); ok {
		delete(fin, "amortization_type")
	}
	body, err := json.Marshal(map[string]interface{}{"deal": payload})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/model/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	HandleRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp RunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Results.Scenario != assumptions.ScenarioBase {
		t.Errorf("scenario = %q, want %q", resp.Results.Scenario, assumptions.ScenarioBase)
	}
	if got := len(resp.Results.PnL); got != assumptions.DefaultHorizon {
		t.Errorf("PnL has %d rows, want %d", got, assumptions.DefaultHorizon)
	}
}
