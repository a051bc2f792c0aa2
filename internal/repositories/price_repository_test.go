package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectTable(mock sqlmock.Sqlmock, table string, exists bool) {
	rows := sqlmock.NewRows([]string{"table_name"})
	if exists {
		rows.AddRow(table)
	}
	mock.ExpectQuery("information_schema.tables").WithArgs(table).WillReturnRows(rows)
}

func expectColumn(mock sqlmock.Sqlmock, table, column string, exists bool) {
	rows := sqlmock.NewRows([]string{"column_name"})
	if exists {
		rows.AddRow(column)
	}
	mock.ExpectQuery("information_schema.columns").WithArgs(table, column).WillReturnRows(rows)
}

const samplePrices = `{
  "Asfodelo": {"pulizia": 70, "prezzi": {"luglio": 100, "agosto": 120, "brumaio": 5}},
  "Villa Jolies": {"pulizia": 150, "prezzi": {"giugno": 250}}
}`

func TestDecodePriceJSON(t *testing.T) {
	table, err := DecodePriceJSON(strings.NewReader(samplePrices))
	if err != nil {
		t.Fatalf("DecodePriceJSON: %v", err)
	}
	asf, ok := table["Asfodelo"]
	if !ok {
		t.Fatalf("Asfodelo missing")
	}
	if asf.CleaningFee != 70 {
		t.Fatalf("cleaning fee = %v", asf.CleaningFee)
	}
	if r, ok := asf.Rates.Rate(time.August); !ok || r != 120 {
		t.Fatalf("august rate = %v %v", r, ok)
	}
	if _, ok := asf.Rates.Rate(time.September); ok {
		t.Fatalf("september should be unset")
	}
	if got := len(asf.Rates.Months()); got != 2 {
		t.Fatalf("unknown month key should be skipped, got %d months", got)
	}
}

func TestDecodePriceJSONRejectsBadInput(t *testing.T) {
	cases := []string{
		`not json`,
		`{}`,
		`{"A": {"pulizia": -1, "prezzi": {}}}`,
		`{"A": {"pulizia": 1, "prezzi": {"luglio": -5}}}`,
	}
	for _, c := range cases {
		if _, err := DecodePriceJSON(strings.NewReader(c)); err == nil {
			t.Fatalf("expected error for %s", c)
		}
	}
}

func TestFilePriceSourceFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prezzi.json")
	if err := os.WriteFile(path, []byte(samplePrices), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := FilePriceSource{Path: path}.LoadPrices(context.Background())
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(table))
	}

	if _, err := (FilePriceSource{Path: filepath.Join(t.TempDir(), "missing.json")}).LoadPrices(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFilePriceSourceOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prezzi.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(samplePrices))
	}))
	defer srv.Close()

	table, err := FilePriceSource{Path: srv.URL + "/prezzi.json", Client: srv.Client()}.LoadPrices(context.Background())
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if _, ok := table["Villa Jolies"]; !ok {
		t.Fatalf("Villa Jolies missing")
	}

	if _, err := (FilePriceSource{Path: srv.URL + "/nope.json", Client: srv.Client()}).LoadPrices(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestMySQLPriceSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTable(mock, "properties", true)
	expectColumn(mock, "properties", "cleaning_fee", true)
	mock.ExpectQuery("COALESCE\\(cleaning_fee, 0\\) FROM properties").
		WillReturnRows(sqlmock.NewRows([]string{"name", "cleaning_fee"}).
			AddRow("Asfodelo", 70.0).
			AddRow("Beachside", 90.0))
	expectTable(mock, "property_rates", true)
	mock.ExpectQuery("FROM property_rates").
		WillReturnRows(sqlmock.NewRows([]string{"property_name", "month", "nightly_rate"}).
			AddRow("Asfodelo", "luglio", 100.0).
			AddRow("Asfodelo", "August", 120.0).
			AddRow("Ghost", "luglio", 1.0).
			AddRow("Beachside", "?", 1.0))

	table, err := MySQLPriceSource{DB: db}.LoadPrices(context.Background())
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(table))
	}
	if r, ok := table["Asfodelo"].Rates.Rate(time.August); !ok || r != 120 {
		t.Fatalf("august rate = %v %v", r, ok)
	}
	if len(table["Beachside"].Rates.Months()) != 0 {
		t.Fatalf("Beachside should have no rates")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLPriceSourceQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	expectTable(mock, "properties", true)
	expectColumn(mock, "properties", "cleaning_fee", true)
	mock.ExpectQuery("FROM properties").WillReturnError(boom)

	if _, err := (MySQLPriceSource{DB: db}).LoadPrices(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	if _, err := (MySQLPriceSource{}).LoadPrices(context.Background()); err == nil {
		t.Fatalf("expected error without DB")
	}
}

func TestMySQLPriceSourceSchemaFallbacks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTable(mock, "properties", true)
	expectColumn(mock, "properties", "cleaning_fee", false)
	mock.ExpectQuery("SELECT name, 0 FROM properties").
		WillReturnRows(sqlmock.NewRows([]string{"name", "cleaning_fee"}).AddRow("Corbezzolo", 0.0))
	expectTable(mock, "property_rates", false)

	table, err := MySQLPriceSource{DB: db}.LoadPrices(context.Background())
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	entry, ok := table["Corbezzolo"]
	if !ok || entry.CleaningFee != 0 || len(entry.Rates.Months()) != 0 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLPriceSourceMissingPropertiesTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTable(mock, "properties", false)

	if _, err := (MySQLPriceSource{DB: db}).LoadPrices(context.Background()); err == nil || !strings.Contains(err.Error(), "properties not found") {
		t.Fatalf("expected missing table error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
