// Package api is the HTTP client for the storefront API: the product
// catalog, the variant lookup, checkout metadata, and order submission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the storefront API. Responses use a {"data": ...}
// envelope; non-2xx statuses surface as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// New builds a Client for the API at baseURL. A default request timeout
// guards against hung requests pinning the feed's loading state.
func New(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// FetchProducts fetches one page of the product feed under a filter.
func (c *Client) FetchProducts(ctx context.Context, page int, filter domain.FeedFilter) (domain.FeedPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if filter.CategoryID != 0 {
		query.Set("category", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.PriceOrder != domain.PriceOrderNone {
		query.Set("order", string(filter.PriceOrder))
	}
	if filter.NameQuery != "" {
		query.Set("q", filter.NameQuery)
	}

	var result domain.FeedPage
	if err := c.getJSON(ctx, "/api/products", query, &result); err != nil {
		return domain.FeedPage{}, err
	}
	return result, nil
}

// FetchProduct fetches one product's detail by id.
func (c *Client) FetchProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var result domain.Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := c.getJSON(ctx, path, nil, &result); err != nil {
		return domain.Product{}, err
	}
	return result, nil
}

// FetchVariant resolves a concrete variant by product id and option name.
func (c *Client) FetchVariant(ctx context.Context, productID int64, option string) (domain.Variant, error) {
	query := url.Values{"option": {option}}
	var result domain.Variant
	path := fmt.Sprintf("/api/products/%d/variant", productID)
	if err := c.getJSON(ctx, path, query, &result); err != nil {
		return domain.Variant{}, err
	}
	return result, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var result []domain.Category
	if err := c.getJSON(ctx, "/api/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) FetchLocations(ctx context.Context) ([]domain.Location, error) {
	var result []domain.Location
	if err := c.getJSON(ctx, "/api/locations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FetchShipping lists the delivery options available for a location.
func (c *Client) FetchShipping(ctx context.Context, locationID int64) ([]domain.ShippingMethod, error) {
	var result []domain.ShippingMethod
	path := fmt.Sprintf("/api/locations/%d/shipping", locationID)
	if err := c.getJSON(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitOrder posts a checkout payload.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	c.logger.Printf("api client: %s %s -> %d %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, msg)
	if msg == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
}
