package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"renewable-invest/internal/model"
)

// HTTPClient fetches weather factors from a remote forecasting service.
//
// The service is expected to answer
//
//	GET {BaseURL}/v1/weather-factors?latitude=..&longitude=..
//
// with a body of the form {"factors": {"solar": 0.82, "wind": 1.0}}.
type HTTPClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewHTTPClient creates a client with a 10 second timeout.
func NewHTTPClient(apiKey, baseURL string, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Logger:  logger,
	}
}

// ProviderError is returned for non-2xx responses and undecodable bodies.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *ProviderError) Error() string {
	return e.Message
}

type factorsResponse struct {
	Factors map[string]float64 `json:"factors"`
}

func (c *HTTPClient) WeatherAdjustmentFactors(ctx context.Context, loc model.Location) (model.WeatherFactors, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("forecast base URL is not configured")
	}
	u, err := url.Parse(c.BaseURL + "/v1/weather-factors")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.Logger.Debug().Err(err).Dur("duration", elapsed).Msg("forecast request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Str("path", u.Path).
		Msg("forecast response")

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "forecast provider rejected the API key",
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("forecast rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("forecast provider returned status %d", resp.StatusCode),
		}
	}

	var body factorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_RESPONSE",
			Message:    fmt.Sprintf("failed to decode forecast response: %v", err),
		}
	}

	out := make(model.WeatherFactors, len(body.Factors))
	for name, v := range body.Factors {
		t := model.SourceType(name)
		if !t.Valid() {
			continue
		}
		out[t] = v
	}
	return out, nil
}
