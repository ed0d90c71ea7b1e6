package feedclient

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	feeddomain "github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type DailySalesParams struct {
	StartDate string
	EndDate   string
}

type DailySalesResponse []feeddomain.DailySales

type Client interface {
	GetDailySales(ctx context.Context, params DailySalesParams) (DailySalesResponse, error)
}

type FeedClient struct {
	httpClient *http.Client
	config     config.SalesFeed
}

func NewClient(cfg config.SalesFeed) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &FeedClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

func (c *FeedClient) GetDailySales(ctx context.Context, params DailySalesParams) (DailySalesResponse, error) {
	var response DailySalesResponse

	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return response, errors.Wrap(err, "feedclient: parse base url")
	}
	endpoint.Path = path.Join(endpoint.Path, "/daily-sales")

	query := endpoint.Query()
	query.Set("start_date", params.StartDate)
	query.Set("end_date", params.EndDate)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, errors.Wrap(err, "feedclient: build request")
	}

	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, errors.Wrap(err, "feedclient: execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, errors.Errorf("feedclient: request failed with status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, errors.Wrap(err, "feedclient: decode response")
	}

	return response, nil
}
