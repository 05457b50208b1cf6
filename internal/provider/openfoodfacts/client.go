// Package openfoodfacts looks up packaged foods so a scanned barcode can
// prefill a meal.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://world.openfoodfacts.org"
	defaultUserAgent = "fitlog/1.0 (+https://github.com/saadjs/fitlog)"
)

var ErrProductNotFound = errors.New("openfoodfacts product not found")

// Product holds macros for one serving when the listing has serving data,
// otherwise per 100g. Basis says which.
type Product struct {
	Barcode       string  `json:"barcode"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	ServingAmount float64 `json:"serving_amount"`
	ServingUnit   string  `json:"serving_unit"`
	Basis         string  `json:"basis"`
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func (c *Client) base() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) get(ctx context.Context, u, what string) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts %s request: %w", what, err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts %s request: %w", what, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts %s response: %w", what, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return body, ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("openfoodfacts %s request failed with status %d", what, resp.StatusCode)
	}
	return body, nil
}

// LookupBarcode returns the product and the raw response body.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, []byte, error) {
	barcode = strings.TrimSpace(barcode)
	body, err := c.get(ctx, fmt.Sprintf("%s/api/v2/product/%s.json", c.base(), url.PathEscape(barcode)), "product")
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return Product{}, body, fmt.Errorf("barcode %q: %w", barcode, ErrProductNotFound)
		}
		return Product{}, body, err
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, body, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return Product{}, body, fmt.Errorf("barcode %q: %w", barcode, ErrProductNotFound)
	}
	p := toProduct(parsed.Product)
	p.Barcode = barcode
	return p, body, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		c.base(),
		url.QueryEscape(strings.TrimSpace(query)),
		limit,
	)
	body, err := c.get(ctx, u, "search")
	if err != nil {
		return nil, err
	}
	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	out := make([]Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		item := toProduct(p)
		item.Barcode = strings.TrimSpace(p.Code)
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("query %q: %w", query, ErrProductNotFound)
	}
	return out, nil
}

func toProduct(p offProduct) Product {
	suffix, basis := "_100g", "100g"
	if _, ok := parseFloatAny(p.Nutriments["energy-kcal_serving"]); ok {
		suffix, basis = "_serving", "serving"
	}
	amount, unit := 100.0, "g"
	if basis == "serving" {
		amount, unit = parseServing(p)
	}
	return Product{
		Name:          strings.TrimSpace(p.ProductName),
		Brand:         strings.TrimSpace(p.Brands),
		ServingAmount: amount,
		ServingUnit:   unit,
		Basis:         basis,
		Calories:      nutrientValue(p.Nutriments, "energy-kcal"+suffix),
		ProteinG:      nutrientValue(p.Nutriments, "proteins"+suffix),
		CarbsG:        nutrientValue(p.Nutriments, "carbohydrates"+suffix),
		FatG:          nutrientValue(p.Nutriments, "fat"+suffix),
	}
}

func nutrientValue(n map[string]any, key string) float64 {
	if v, ok := parseFloatAny(n[key]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseServing(p offProduct) (float64, string) {
	if p.ServingQuantity > 0 {
		unit := strings.TrimSpace(p.ServingQuantityUnit)
		if unit == "" {
			unit = "g"
		}
		return p.ServingQuantity, unit
	}
	if parts := strings.Fields(strings.TrimSpace(p.ServingSize)); len(parts) >= 2 {
		if val, err := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", ""), 64); err == nil && val > 0 {
			return val, parts[1]
		}
	}
	return 1, "serving"
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	Code                string         `json:"code"`
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ServingSize         string         `json:"serving_size"`
	ServingQuantity     float64        `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
