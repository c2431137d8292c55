package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRunActor_HappyPath(t *testing.T) {
	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v2/acts/"):
			if r.URL.Query().Get("token") != "tok" {
				t.Errorf("missing token on start request")
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode start body: %v", err)
			}
			if body["maxItems"] != float64(50) {
				t.Errorf("unexpected maxItems: %v", body["maxItems"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": "run1", "defaultDatasetId": "ds1"},
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/actor-runs/run1"):
			polls++
			status := "RUNNING"
			if polls >= 2 {
				status = "SUCCEEDED"
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": "run1", "status": status},
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/datasets/ds1/items"):
			json.NewEncoder(w).Encode([]map[string]any{
				{"title": "Epic Tribal Drums", "views": 5200000},
				{"name": "fyp", "videoCount": 500000000},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := New("tok", "acme~sounds", "acme~tags", srv.URL)
	a.pollInterval = time.Millisecond

	recs, err := a.FetchSounds(context.Background())
	if err != nil {
		t.Fatalf("fetch sounds: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Title != "Epic Tribal Drums" || recs[0].Views != 5200000 {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Name != "fyp" || recs[1].VideoCount != 500000000 {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
	if polls < 2 {
		t.Fatalf("expected at least 2 status polls, got %d", polls)
	}
}

func TestRunActor_NoRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	a := New("tok", "acme~sounds", "acme~tags", srv.URL)
	if _, err := a.FetchSounds(context.Background()); err == nil {
		t.Fatal("expected error when no run id is returned")
	}
}

func TestRunActor_NoToken(t *testing.T) {
	a := New("", "acme~sounds", "acme~tags", "")
	if a.Configured() {
		t.Fatal("expected unconfigured adapter")
	}
	if _, err := a.FetchHashtags(context.Background()); err == nil {
		t.Fatal("expected error without token")
	}
}

func TestRunActor_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := New("tok", "acme~sounds", "acme~tags", srv.URL)
	_, err := a.FetchSounds(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
