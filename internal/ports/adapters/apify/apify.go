package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/creatorloop/vertcut/internal/types"
)

const (
	defaultBaseURL = "https://api.apify.com"
	maxItems       = 50
	pollAttempts   = 30
)

// Adapter fetches trend records by running Apify scraper actors and reading
// their default dataset once the run succeeds.
type Adapter struct {
	token         string
	soundsActor   string
	hashtagsActor string
	baseURL       string
	pollInterval  time.Duration
	client        *http.Client
}

func New(token, soundsActor, hashtagsActor, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		token:         token,
		soundsActor:   soundsActor,
		hashtagsActor: hashtagsActor,
		baseURL:       baseURL,
		pollInterval:  2 * time.Second,
		client:        &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API token is present.
func (a *Adapter) Configured() bool { return a.token != "" }

func (a *Adapter) FetchSounds(ctx context.Context) ([]types.TrendRecord, error) {
	return a.runActor(ctx, a.soundsActor)
}

func (a *Adapter) FetchHashtags(ctx context.Context) ([]types.TrendRecord, error) {
	return a.runActor(ctx, a.hashtagsActor)
}

type runData struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

func (a *Adapter) runActor(ctx context.Context, actor string) ([]types.TrendRecord, error) {
	if !a.Configured() {
		return nil, errors.New("apify: no API token configured")
	}

	body, err := json.Marshal(map[string]any{"maxItems": maxItems})
	if err != nil {
		return nil, err
	}
	var run runData
	startURL := fmt.Sprintf("%s/v2/acts/%s/runs?token=%s", a.baseURL, url.PathEscape(actor), url.QueryEscape(a.token))
	if err := a.doJSON(ctx, http.MethodPost, startURL, body, &run); err != nil {
		return nil, fmt.Errorf("apify: start actor run: %w", err)
	}
	if run.Data.ID == "" {
		return nil, errors.New("apify: actor run was not created")
	}

	statusURL := fmt.Sprintf("%s/v2/actor-runs/%s?token=%s", a.baseURL, run.Data.ID, url.QueryEscape(a.token))
	for i := 0; i < pollAttempts; i++ {
		var status runData
		if err := a.doJSON(ctx, http.MethodGet, statusURL, nil, &status); err != nil {
			return nil, fmt.Errorf("apify: poll actor run: %w", err)
		}
		if status.Data.Status == "SUCCEEDED" {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}

	itemsURL := fmt.Sprintf("%s/v2/datasets/%s/items?token=%s", a.baseURL, run.Data.DefaultDatasetID, url.QueryEscape(a.token))
	var items []types.TrendRecord
	if err := a.doJSON(ctx, http.MethodGet, itemsURL, nil, &items); err != nil {
		return nil, fmt.Errorf("apify: fetch dataset items: %w", err)
	}
	return items, nil
}

func (a *Adapter) doJSON(ctx context.Context, method, reqURL string, body []byte, dst any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
