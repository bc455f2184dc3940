// Package subscriber provides the HTTP implementation of the subscriber
// resolver contract. Preference matching lives in the external
// subscription service; this client only asks who is affected and where
// to reach them.
package subscriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

// requestTimeout bounds calls to the subscription service. Timeouts
// belong here, not in the engine.
const requestTimeout = 10 * time.Second

// HTTPResolver resolves affected subscribers via the subscription
// service's HTTP API.
type HTTPResolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPResolver creates a resolver against the given base URL.
func NewHTTPResolver(baseURL string) (*HTTPResolver, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("resolver base URL cannot be empty")
	}
	return &HTTPResolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// resolveRequest is the wire shape of a resolution query.
type resolveRequest struct {
	TriggerID   string   `json:"trigger_id"`
	EventType   string   `json:"event_type"`
	Priority    string   `json:"priority"`
	ElectionID  string   `json:"election_id,omitempty"`
	CandidateID string   `json:"candidate_id,omitempty"`
	EntityIDs   []string `json:"entity_ids,omitempty"`
}

type resolveResponse struct {
	SubscriberIDs []string `json:"subscriber_ids"`
}

// Resolve implements the resolver contract. An empty list is a valid,
// non-error result.
func (r *HTTPResolver) Resolve(ctx context.Context, t *trigger.Trigger, evctx *events.EventContext) ([]string, error) {
	body, err := json.Marshal(resolveRequest{
		TriggerID:   t.ID,
		EventType:   t.EventType,
		Priority:    string(t.Priority),
		ElectionID:  evctx.ElectionID,
		CandidateID: evctx.CandidateID,
		EntityIDs:   evctx.EntityIDs(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resolve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/subscribers/resolve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscriber resolution failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subscriber resolution returned status %d", resp.StatusCode)
	}

	var decoded resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode resolve response: %w", err)
	}
	return decoded.SubscriberIDs, nil
}

type addressResponse struct {
	Address string `json:"address"`
}

// Address implements the resolver contract: the recipient address for a
// subscriber on a channel. An empty address means the subscriber has no
// endpoint for that channel.
func (r *HTTPResolver) Address(ctx context.Context, subscriberID, channel string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/subscribers/%s/address?channel=%s",
		r.baseURL, url.PathEscape(subscriberID), url.QueryEscape(channel))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build address request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("address lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("address lookup returned status %d", resp.StatusCode)
	}

	var decoded addressResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode address response: %w", err)
	}
	return decoded.Address, nil
}
