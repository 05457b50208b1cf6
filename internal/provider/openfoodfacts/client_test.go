package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLookupBarcodePrefersServingValues(t *testing.T) {
	t.Parallel()

	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Yogurt Cup",
    "brands": "Brand Co",
    "serving_quantity": 170,
    "serving_quantity_unit": "g",
    "nutriments": {
      "energy-kcal_serving": 120,
      "energy-kcal_100g": 70,
      "proteins_serving": 10,
      "carbohydrates_serving": "15",
      "fat_serving": 2
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, raw, err := c.LookupBarcode(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if gotPath != "/api/v2/product/12345678.json" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if !strings.HasPrefix(gotUA, "fitlog/") {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
	if len(raw) == 0 {
		t.Fatalf("expected raw body to be returned")
	}
	if item.Name != "Yogurt Cup" || item.Barcode != "12345678" || item.Basis != "serving" {
		t.Fatalf("unexpected parsed item: %+v", item)
	}
	if item.Calories != 120 || item.ProteinG != 10 || item.CarbsG != 15 || item.FatG != 2 || item.ServingAmount != 170 {
		t.Fatalf("unexpected macros: %+v", item)
	}
}

func TestLookupBarcodeFallsBackToPer100g(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Oats","nutriments":{"energy-kcal_100g":380,"proteins_100g":13}}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, _, err := c.LookupBarcode(context.Background(), "87654321")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if item.Basis != "100g" || item.Calories != 380 || item.ProteinG != 13 || item.ServingAmount != 100 {
		t.Fatalf("unexpected per-100g item: %+v", item)
	}
}

func TestLookupBarcodeNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, _, err := c.LookupBarcode(context.Background(), "00000000"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSearchProductsSkipsUnnamed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_terms") != "greek yogurt" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"products":[{"code":"111","product_name":""},{"code":"222","product_name":"Greek Yogurt","nutriments":{"energy-kcal_100g":97}}]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.SearchProducts(context.Background(), "greek yogurt", 5)
	if err != nil {
		t.Fatalf("search products: %v", err)
	}
	if len(items) != 1 || items[0].Barcode != "222" || items[0].Calories != 97 {
		t.Fatalf("unexpected search results: %+v", items)
	}
}
