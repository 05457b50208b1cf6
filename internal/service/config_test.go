package service_test

import (
	"testing"

	"github.com/saadjs/fitlog/internal/service"
)

func TestConfigSetGet(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetConfig(sqldb, "Weight_Unit", "lb"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	v, ok, err := service.GetConfig(sqldb, "weight_unit")
	if err != nil || !ok || v != "lb" {
		t.Fatalf("unexpected config value %q %v %v", v, ok, err)
	}
	if err := service.SetConfig(sqldb, "weight_unit", "stone"); err == nil {
		t.Fatalf("expected invalid unit to fail")
	}
	if err := service.SetConfig(sqldb, "favourite_colour", "blue"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
	if err := service.SetConfig(sqldb, service.ConfigBarcodeCacheDays, "0"); err == nil {
		t.Fatalf("expected zero cache days to fail")
	}
	if err := service.SetConfig(sqldb, service.ConfigAdherenceTolerance, "0.15"); err != nil {
		t.Fatalf("set tolerance: %v", err)
	}
	if got := service.ConfigFloat(sqldb, service.ConfigAdherenceTolerance, 0.1); got != 0.15 {
		t.Fatalf("expected tolerance 0.15, got %v", got)
	}
	if got := service.ConfigOrDefault(sqldb, service.ConfigOpenFoodFactsURL, "https://example.org"); got != "https://example.org" {
		t.Fatalf("expected default url, got %q", got)
	}
	all, err := service.ListConfig(sqldb)
	if err != nil || len(all) != 2 {
		t.Fatalf("unexpected config listing %v %v", all, err)
	}
}
