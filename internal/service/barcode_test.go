package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/db"
	"github.com/saadjs/fitlog/internal/provider/openfoodfacts"
)

type fakeProductLookup struct {
	calls int
	item  openfoodfacts.Product
	err   error
}

func (f *fakeProductLookup) LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, []byte, error) {
	_ = ctx
	f.calls++
	if f.err != nil {
		return openfoodfacts.Product{}, nil, f.err
	}
	item := f.item
	item.Barcode = barcode
	return item, []byte(`{"ok":true}`), nil
}

func TestLookupBarcodeUsesCache(t *testing.T) {
	sqldb := newServiceDB(t)
	defer sqldb.Close()

	client := &fakeProductLookup{item: openfoodfacts.Product{
		Name:          "Protein Bar",
		Brand:         "Brand",
		ServingAmount: 1,
		ServingUnit:   "bar",
		Basis:         "serving",
		Calories:      200,
		ProteinG:      20,
		CarbsG:        20,
		FatG:          7,
	}}

	first, err := LookupBarcode(context.Background(), sqldb, client, "012345678905", 0)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if first.FromCache {
		t.Fatalf("expected first lookup to hit the provider")
	}
	second, err := LookupBarcode(context.Background(), sqldb, client, "012345678905", 0)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 provider call due to cache hit, got %d", client.calls)
	}
	if !second.FromCache || second.Name != "Protein Bar" || second.Calories != 200 {
		t.Fatalf("unexpected cached result %+v", second)
	}

	items, err := ListBarcodeCache(sqldb, 10)
	if err != nil {
		t.Fatalf("list cache: %v", err)
	}
	if len(items) != 1 || items[0].Barcode != "012345678905" {
		t.Fatalf("unexpected cache listing %+v", items)
	}
	n, err := PurgeBarcodeCache(sqldb, "")
	if err != nil || n != 1 {
		t.Fatalf("purge cache: %d %v", n, err)
	}
}

func TestLookupBarcodeExpiredCacheRefetches(t *testing.T) {
	sqldb := newServiceDB(t)
	defer sqldb.Close()

	p := openfoodfacts.Product{Barcode: "12345678", Name: "Old Name"}
	if err := upsertBarcodeCache(sqldb, p, time.Now().Add(-48*time.Hour), 24*time.Hour); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	client := &fakeProductLookup{item: openfoodfacts.Product{Name: "New Name"}}
	got, err := LookupBarcode(context.Background(), sqldb, client, "12345678", time.Hour)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if client.calls != 1 || got.Name != "New Name" || got.FromCache {
		t.Fatalf("expected refetch, got %+v after %d calls", got, client.calls)
	}
}

func TestLookupBarcodeValidationAndErrors(t *testing.T) {
	sqldb := newServiceDB(t)
	defer sqldb.Close()

	client := &fakeProductLookup{}
	if _, err := LookupBarcode(context.Background(), sqldb, client, "abc", 0); err == nil {
		t.Fatalf("expected invalid barcode to fail")
	}
	if client.calls != 0 {
		t.Fatalf("expected no provider call for invalid barcode")
	}

	client.err = openfoodfacts.ErrProductNotFound
	if _, err := LookupBarcode(context.Background(), sqldb, client, "12345678", 0); !errors.Is(err, openfoodfacts.ErrProductNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestMealFromProductScalesServings(t *testing.T) {
	in, err := MealFromProduct(openfoodfacts.Product{Name: "Yogurt", Brand: "Acme", Calories: 120, ProteinG: 10, CarbsG: 15, FatG: 2.5}, 1.5)
	if err != nil {
		t.Fatalf("meal from product: %v", err)
	}
	if in.Name != "Yogurt (Acme)" || *in.Calories != 180 || *in.ProteinG != 15 || *in.FatG != 3.8 {
		t.Fatalf("unexpected meal input %+v", in)
	}
	if _, err := MealFromProduct(openfoodfacts.Product{Name: "x"}, 0); err == nil {
		t.Fatalf("expected zero servings to fail")
	}
}

func newServiceDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitlog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}
