package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckHealth_ReportsBoundFlag(t *testing.T) {
	orig := serviceIsHealthy
	defer func() { serviceIsHealthy = orig }()

	h := NewHealthHandler()
	for _, tc := range []struct {
		healthy bool
		want    string
	}{
		{true, "healthy"},
		{false, "unhealthy"},
	} {
		BindServiceHealth(func() bool { return tc.healthy })
		rr := httptest.NewRecorder()
		h.CheckHealth(rr, httptest.NewRequest("GET", "/v0/health", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != tc.want {
			t.Fatalf("status = %q, want %q", body.Status, tc.want)
		}
	}
}
