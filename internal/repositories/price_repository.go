package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"quotebackend/internal/db"
	"quotebackend/internal/pricing"
	"quotebackend/internal/utils"
)

// PriceSource loads the full price table.
type PriceSource interface {
	LoadPrices(ctx context.Context) (pricing.PriceTable, error)
}

// rawPropertyPrices mirrors one entry of prezzi.json.
type rawPropertyPrices struct {
	Pulizia float64            `json:"pulizia"`
	Prezzi  map[string]float64 `json:"prezzi"`
}

// DecodePriceJSON parses the prezzi.json document.
func DecodePriceJSON(r io.Reader) (pricing.PriceTable, error) {
	var raw map[string]rawPropertyPrices
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode prices: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode prices: no properties")
	}

	table := make(pricing.PriceTable, len(raw))
	for name, entry := range raw {
		if entry.Pulizia < 0 {
			return nil, fmt.Errorf("property %s: negative cleaning fee", name)
		}
		var rates pricing.RateTable
		for key, rate := range entry.Prezzi {
			month, ok := pricing.ParseMonthKey(key)
			if !ok {
				utils.LogWarn("", "prices", "decode", fmt.Sprintf("property %s: unknown month %q skipped", name, key))
				continue
			}
			if rate < 0 {
				return nil, fmt.Errorf("property %s: negative rate for %s", name, key)
			}
			rates.Set(month, rate)
		}
		table[name] = pricing.PropertyPrices{CleaningFee: entry.Pulizia, Rates: rates}
	}
	return table, nil
}

// FilePriceSource reads prezzi.json from disk or over HTTP(S).
type FilePriceSource struct {
	Path    string
	Client  *http.Client
	Timeout time.Duration
}

func (s FilePriceSource) LoadPrices(ctx context.Context) (pricing.PriceTable, error) {
	if strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://") {
		return s.fetch(ctx)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()
	return DecodePriceJSON(f)
}

func (s FilePriceSource) fetch(ctx context.Context) (pricing.PriceTable, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Path, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch prices: unexpected status %d", resp.StatusCode)
	}
	return DecodePriceJSON(resp.Body)
}

// MySQLPriceSource reads properties and property_rates.
type MySQLPriceSource struct {
	DB *sql.DB
}

func (s MySQLPriceSource) LoadPrices(ctx context.Context) (pricing.PriceTable, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database not connected")
	}

	if !db.HasTable(ctx, s.DB, "properties") {
		return nil, fmt.Errorf("table properties not found")
	}
	feeExpr := "0"
	if db.HasColumn(ctx, s.DB, "properties", "cleaning_fee") {
		feeExpr = "COALESCE(cleaning_fee, 0)"
	} else {
		utils.LogWarn("", "prices", "mysql", "properties.cleaning_fee missing, cleaning fees read as 0")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name, `+feeExpr+` FROM properties`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	table := pricing.PriceTable{}
	for rows.Next() {
		var name string
		var fee float64
		if err := rows.Scan(&name, &fee); err != nil {
			rows.Close()
			return nil, err
		}
		table[name] = pricing.PropertyPrices{CleaningFee: fee}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if !db.HasTable(ctx, s.DB, "property_rates") {
		utils.LogWarn("", "prices", "mysql", "table property_rates not found, every night priced at 0")
		return table, nil
	}

	rateRows, err := s.DB.QueryContext(ctx, `SELECT property_name, month, nightly_rate FROM property_rates`)
	if err != nil {
		return nil, fmt.Errorf("query property_rates: %w", err)
	}
	defer rateRows.Close()
	for rateRows.Next() {
		var (
			name  string
			month string
			rate  float64
		)
		if err := rateRows.Scan(&name, &month, &rate); err != nil {
			return nil, err
		}
		entry, ok := table[name]
		if !ok {
			utils.LogWarn("", "prices", "mysql", fmt.Sprintf("rate for unknown property %s skipped", name))
			continue
		}
		m, ok := pricing.ParseMonthKey(month)
		if !ok {
			utils.LogWarn("", "prices", "mysql", fmt.Sprintf("property %s: unknown month %q skipped", name, month))
			continue
		}
		entry.Rates.Set(m, rate)
		table[name] = entry
	}
	if err := rateRows.Err(); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no properties in database")
	}
	return table, nil
}
