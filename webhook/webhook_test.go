package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-canopy/types"
)

func TestFireDeliversPayload(t *testing.T) {
	var received types.WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	payload := types.WebhookPayload{
		AlertID:           "abc123",
		Region:            []float64{-63.0, -10.5, -62.0, -10.0},
		PatchCount:        2,
		TotalAreaHectares: 14.5,
	}
	if !Fire(payload, srv.URL) {
		t.Fatal("delivery reported failure")
	}
	if received.AlertID != "abc123" || received.PatchCount != 2 {
		t.Errorf("received payload: %+v", received)
	}
}

func TestFireReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if Fire(types.WebhookPayload{AlertID: "x"}, srv.URL) {
		t.Error("5xx response should report failure")
	}
}

func TestFireSkipsEmptyURL(t *testing.T) {
	if Fire(types.WebhookPayload{AlertID: "x"}, "") {
		t.Error("empty URL should report failure")
	}
}
