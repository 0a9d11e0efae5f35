package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// Currencies returns the code to display name map served at /currencies.
func (c *HTTPClient) Currencies(ctx context.Context) (map[string]string, error) {
	const op = "frankfurter.Currencies"

	body, err := c.get(ctx, c.baseURL+"/currencies")
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %v", entities.ErrMalformedResponse, err), op)
	}

	if len(result) == 0 {
		return nil, errors.Wrap(entities.ErrMalformedResponse, op)
	}

	return result, nil
}

// Latest returns the latest rates of symbols against base.
func (c *HTTPClient) Latest(ctx context.Context, base string, symbols []string) (*entities.FiatQuote, error) {
	const op = "frankfurter.Latest"

	if len(symbols) == 0 {
		return nil, errors.Wrap(entities.ErrNoTargets, op)
	}

	u, err := url.Parse(c.baseURL + "/latest")
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	q := u.Query()
	q.Set("base", base)
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var result latestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %v", entities.ErrMalformedResponse, err), op)
	}

	if result.Rates == nil {
		return nil, errors.Wrap(fmt.Errorf("%w: no rates in response", entities.ErrMalformedResponse), op)
	}

	rates := make(map[string]float64, len(result.Rates))
	for code, rate := range result.Rates {
		rates[entities.NormalizeCode(code)] = rate
	}

	return &entities.FiatQuote{
		Base:  entities.NormalizeCode(result.Base),
		Date:  result.Date,
		Rates: rates,
	}, nil
}

func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api_client get error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body error: %w", err)
	}

	return body, nil
}
