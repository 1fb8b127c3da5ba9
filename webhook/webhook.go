// Package webhook delivers completed-alert payloads to a caller
// supplied URL. Delivery failures are logged and swallowed; a flaky
// receiver must never fail an analysis.
package webhook

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go-canopy/types"
)

var client = &http.Client{Timeout: 10 * time.Second}

// Fire POSTs the payload as JSON. Returns true on a 2xx response.
func Fire(payload types.WebhookPayload, url string) bool {
	if url == "" {
		log.Println("No webhook URL configured, skipping")
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Webhook payload marshal failed: %v", err)
		return false
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Webhook delivery failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Webhook delivery to %s rejected with status %d", url, resp.StatusCode)
		return false
	}
	log.Printf("Webhook delivered to %s (status %d)", url, resp.StatusCode)
	return true
}
