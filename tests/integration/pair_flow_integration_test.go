//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// Requires a running server; set RELAY_TEST_BASE_URL to point at it.
func baseURL(t *testing.T) string {
	t.Helper()
	u := os.Getenv("RELAY_TEST_BASE_URL")
	if u == "" {
		t.Skip("RELAY_TEST_BASE_URL not set")
	}
	return u
}

var client = &http.Client{Timeout: 10 * time.Second}

func postJSON(t *testing.T, url, token string, body any, out any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp
}

func getJSON(t *testing.T, url, token string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp
}

type pairResult struct {
	PairID string `json:"pair_id"`
	UserID string `json:"user_id"`
	Code   string `json:"code,omitempty"`
	Status string `json:"status"`
	Token  string `json:"token"`
}

func TestPairFlow(t *testing.T) {
	base := baseURL(t)

	var created pairResult
	resp := postJSON(t, base+"/api/pair/create", "", map[string]string{"creator_name": "Alex"}, &created)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create pair: status %d", resp.StatusCode)
	}
	if created.Code == "" || created.Token == "" || created.PairID == "" {
		t.Fatalf("create pair: incomplete result %+v", created)
	}
	if created.Status != "pending" {
		t.Fatalf("create pair: status = %q, want pending", created.Status)
	}

	var joined pairResult
	resp = postJSON(t, base+"/api/pair/join", "", map[string]string{"code": created.Code, "joiner_name": "Sam"}, &joined)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join pair: status %d", resp.StatusCode)
	}
	if joined.PairID != created.PairID {
		t.Fatalf("join pair: pair_id = %q, want %q", joined.PairID, created.PairID)
	}
	if joined.Status != "active" {
		t.Fatalf("join pair: status = %q, want active", joined.Status)
	}
	if joined.Code != "" {
		t.Fatalf("join pair: code leaked in response")
	}

	resp = postJSON(t, base+"/api/moods", joined.Token, map[string]any{
		"mood":       "😊",
		"mood_value": "happy",
		"intensity":  4,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("log mood: status %d", resp.StatusCode)
	}

	var moodList struct {
		Moods []map[string]any `json:"moods"`
	}
	resp = getJSON(t, base+"/api/moods", joined.Token, &moodList)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list moods: status %d", resp.StatusCode)
	}
	if len(moodList.Moods) != 1 {
		t.Fatalf("list moods: got %d entries, want 1", len(moodList.Moods))
	}

	var rhythm map[string]any
	resp = getJSON(t, base+"/api/metrics/rhythm", joined.Token, &rhythm)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rhythm: status %d", resp.StatusCode)
	}
	if rhythm["pair_id"] != created.PairID {
		t.Fatalf("rhythm: pair_id = %v, want %q", rhythm["pair_id"], created.PairID)
	}
	if _, ok := rhythm["time_period"].(string); !ok {
		t.Fatalf("rhythm: missing time_period in %v", rhythm)
	}

	resp = getJSON(t, fmt.Sprintf("%s/api/pair?pair_id=%s", base, created.PairID), joined.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get pair: status %d", resp.StatusCode)
	}
}
