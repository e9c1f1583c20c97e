package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunConvert_MalformedItem(t *testing.T) {
	var buf bytes.Buffer
	err := runConvert("http://localhost:0", []string{"sodium7"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "ELECTROLYTE=VALUE") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestRunConvert_SendsOrderedItems(t *testing.T) {
	var got struct {
		Items []struct {
			ID          string `json:"id"`
			Value       string `json:"value"`
			Electrolyte string `json:"electrolyte"`
		} `json:"items"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"count":0}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := runConvert(srv.URL, []string{"sodium=7", "potassium=3.5"}, &buf); err != nil {
		t.Fatalf("runConvert: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].Electrolyte != "sodium" || got.Items[1].Value != "3.5" {
		t.Fatalf("unexpected request items: %+v", got.Items)
	}
	if !strings.Contains(buf.String(), `"count":0`) {
		t.Fatalf("response body not printed: %q", buf.String())
	}
}

func TestRunCalculate_FailsOnValidationStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"validation":{"isValid":false}}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	err := runCalculate(srv.URL, "/v0/formulations", []byte(`{}`), &buf)
	if err == nil {
		t.Fatalf("expected error for 422 response")
	}
	if !strings.Contains(buf.String(), `"success":false`) {
		t.Fatalf("validation payload not printed: %q", buf.String())
	}
}
