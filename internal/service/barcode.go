package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/saadjs/fitlog/internal/provider/openfoodfacts"
)

const defaultBarcodeTTL = 30 * 24 * time.Hour

var barcodePattern = regexp.MustCompile(`^[0-9]{8,14}$`)

// ProductLookup is satisfied by *openfoodfacts.Client.
type ProductLookup interface {
	LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error)
}

type BarcodeLookupResult struct {
	openfoodfacts.Product
	FromCache bool `json:"from_cache"`
}

type BarcodeCacheItem struct {
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	ExpiresAt time.Time `json:"expires_at"`
}

func isValidBarcode(barcode string) bool {
	return barcodePattern.MatchString(barcode)
}

// LookupBarcode serves from barcode_cache while the entry is fresh and
// otherwise asks the provider and refreshes the cache. A ttl <= 0 uses the
// default of 30 days.
func LookupBarcode(ctx context.Context, db *sql.DB, client ProductLookup, barcode string, ttl time.Duration) (BarcodeLookupResult, error) {
	barcode = strings.TrimSpace(barcode)
	if !isValidBarcode(barcode) {
		return BarcodeLookupResult{}, fmt.Errorf("invalid barcode %q (expected 8-14 digits)", barcode)
	}
	if ttl <= 0 {
		ttl = defaultBarcodeTTL
	}

	cached, found, err := lookupBarcodeCache(db, barcode, time.Now())
	if err != nil {
		return BarcodeLookupResult{}, err
	}
	if found {
		return BarcodeLookupResult{Product: cached, FromCache: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	product, _, err := client.LookupBarcode(ctx, barcode)
	if err != nil {
		return BarcodeLookupResult{}, err
	}
	product.Barcode = barcode
	if err := upsertBarcodeCache(db, product, time.Now(), ttl); err != nil {
		return BarcodeLookupResult{}, err
	}
	return BarcodeLookupResult{Product: product}, nil
}

// MealFromProduct scales a product's macros by servings into a meal input.
func MealFromProduct(p openfoodfacts.Product, servings float64) (MealInput, error) {
	if servings <= 0 {
		return MealInput{}, fmt.Errorf("servings must be > 0")
	}
	scale := func(v float64) *float64 {
		out := round1(v * servings)
		return &out
	}
	name := p.Name
	if p.Brand != "" {
		name = fmt.Sprintf("%s (%s)", p.Name, p.Brand)
	}
	return MealInput{
		Name:     name,
		Calories: scale(p.Calories),
		ProteinG: scale(p.ProteinG),
		CarbsG:   scale(p.CarbsG),
		FatG:     scale(p.FatG),
	}, nil
}

func lookupBarcodeCache(db *sql.DB, barcode string, now time.Time) (openfoodfacts.Product, bool, error) {
	var payload, expires string
	err := db.QueryRow(`SELECT payload, expires_at FROM barcode_cache WHERE barcode = ?`, barcode).Scan(&payload, &expires)
	if err == sql.ErrNoRows {
		return openfoodfacts.Product{}, false, nil
	}
	if err != nil {
		return openfoodfacts.Product{}, false, fmt.Errorf("lookup barcode cache: %w", err)
	}
	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || now.After(exp) {
		return openfoodfacts.Product{}, false, nil
	}
	var p openfoodfacts.Product
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return openfoodfacts.Product{}, false, nil
	}
	return p, true, nil
}

func upsertBarcodeCache(db *sql.DB, p openfoodfacts.Product, now time.Time, ttl time.Duration) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode barcode cache payload: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO barcode_cache(barcode, name, brand, payload, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(barcode) DO UPDATE SET
  name=excluded.name,
  brand=excluded.brand,
  payload=excluded.payload,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, p.Barcode, p.Name, p.Brand, string(payload), now.UTC().Format(time.RFC3339), now.Add(ttl).UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert barcode cache: %w", err)
	}
	return nil
}

func ListBarcodeCache(db *sql.DB, limit int) ([]BarcodeCacheItem, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`SELECT barcode, name, brand, expires_at FROM barcode_cache ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list barcode cache: %w", err)
	}
	defer rows.Close()
	out := make([]BarcodeCacheItem, 0)
	for rows.Next() {
		var item BarcodeCacheItem
		var expires string
		if err := rows.Scan(&item.Barcode, &item.Name, &item.Brand, &expires); err != nil {
			return nil, fmt.Errorf("scan barcode cache: %w", err)
		}
		item.ExpiresAt, _ = time.Parse(time.RFC3339, expires)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate barcode cache: %w", err)
	}
	return out, nil
}

func PurgeBarcodeCache(db *sql.DB, barcode string) (int64, error) {
	barcode = strings.TrimSpace(barcode)
	var (
		res sql.Result
		err error
	)
	if barcode == "" {
		res, err = db.Exec(`DELETE FROM barcode_cache`)
	} else {
		res, err = db.Exec(`DELETE FROM barcode_cache WHERE barcode = ?`, barcode)
	}
	if err != nil {
		return 0, fmt.Errorf("purge barcode cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge barcode cache rows affected: %w", err)
	}
	return affected, nil
}
