package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	ConfigWeightUnit         = "weight_unit"
	ConfigOpenFoodFactsURL   = "openfoodfacts_url"
	ConfigBarcodeCacheDays   = "barcode_cache_days"
	ConfigAdherenceTolerance = "adherence_tolerance"
)

// knownConfig lists the keys fitlog reads and how to check their values.
var knownConfig = map[string]func(string) error{
	ConfigWeightUnit: func(v string) error {
		_, err := WeightFromKg(1, v)
		return err
	},
	ConfigOpenFoodFactsURL: func(v string) error {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("must be an http(s) URL")
		}
		return nil
	},
	ConfigBarcodeCacheDays: func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("must be a whole number of days >= 1")
		}
		return nil
	},
	ConfigAdherenceTolerance: func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("must be a fraction between 0 and 1")
		}
		return nil
	},
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	check, ok := knownConfig[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := check(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ConfigOrDefault returns the stored value, or def when unset or unreadable.
func ConfigOrDefault(db *sql.DB, key, def string) string {
	v, ok, err := GetConfig(db, key)
	if err != nil || !ok || v == "" {
		return def
	}
	return v
}

func ConfigFloat(db *sql.DB, key string, def float64) float64 {
	f, err := strconv.ParseFloat(ConfigOrDefault(db, key, ""), 64)
	if err != nil {
		return def
	}
	return f
}
