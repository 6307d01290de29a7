// Package geo provides an HTTP adapter for resolving travel distance between
// two addresses via an external routing service.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swiftdrop/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxAttempts    = 4
	initialBackoff = 200 * time.Millisecond
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

// HTTPDistanceProvider implements DistanceProvider against a routing service
// exposing a route endpoint keyed by origin and destination addresses.
//
// The provider is safe for concurrent use.
type HTTPDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewHTTPDistanceProvider creates a provider for the routing service at baseURL.
func NewHTTPDistanceProvider(baseURL string, apiKey string) (*HTTPDistanceProvider, error) {
	if baseURL == "" {
		return nil, errors.New("routing service base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("routing service api key is empty")
	}

	return &HTTPDistanceProvider{
		session: &http.Client{Timeout: defaultTimeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// routeResponse is the wire format of the routing service's route endpoint.
type routeResponse struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

// GetDistance resolves the travel distance between two addresses.
// A failed lookup is returned as an error; it is never reported as zero
// distance, which would silently underprice the order.
func (p *HTTPDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	normOrigin := normalize(origin)
	if normOrigin == "" {
		return ports.DistanceResult{}, errors.New("origin must be non-empty")
	}

	normDestination := normalize(destination)
	if normDestination == "" {
		return ports.DistanceResult{}, errors.New("destination must be non-empty")
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRouteRequest(ctx, normOrigin, normDestination)
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distance %q -> %q: %w", normOrigin, normDestination, err,
		)
	}
	defer resp.Body.Close()

	var route routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if route.DistanceMeters <= 0 {
		return ports.DistanceResult{}, fmt.Errorf(
			"routing service returned no route for %q -> %q", normOrigin, normDestination,
		)
	}

	return ports.DistanceResult{
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}, nil
}

func (p *HTTPDistanceProvider) newRouteRequest(
	ctx context.Context, origin string, destination string,
) (*http.Request, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)

	endpoint := p.baseURL + "/v1/route?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (p *HTTPDistanceProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (p *HTTPDistanceProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// normalize collapses whitespace so equivalent address spellings hit the same
// route on the provider side.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
