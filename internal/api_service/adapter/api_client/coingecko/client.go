package coingecko

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const coinID = "bitcoin"

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

// BitcoinPrices returns the price of one bitcoin in each of vs, keyed by
// upper-case code. Codes the upstream does not quote are left out.
func (c *HTTPClient) BitcoinPrices(ctx context.Context, vs []string) (map[string]float64, error) {
	const op = "coingecko.BitcoinPrices"

	if len(vs) == 0 {
		return nil, errors.Wrap(entities.ErrNoTargets, op)
	}

	lower := make([]string, len(vs))
	for i, code := range vs {
		lower[i] = strings.ToLower(code)
	}

	u, err := url.Parse(c.baseURL + "/simple/price")
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	q := u.Query()
	q.Set("ids", coinID)
	q.Set("vs_currencies", strings.Join(lower, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(fmt.Errorf("bad status: %s", resp.Status), op)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return parsePrices(body)
}

func parsePrices(body []byte) (map[string]float64, error) {
	const op = "coingecko.parsePrices"

	if !gjson.ValidBytes(body) {
		return nil, errors.Wrap(fmt.Errorf("%w: invalid json", entities.ErrMalformedResponse), op)
	}

	coin := gjson.GetBytes(body, coinID)
	if !coin.IsObject() {
		return nil, errors.Wrap(fmt.Errorf("%w: no %s object", entities.ErrMalformedResponse, coinID), op)
	}

	prices := make(map[string]float64)
	coin.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			prices[entities.NormalizeCode(key.String())] = value.Float()
		}
		return true
	})

	return prices, nil
}
