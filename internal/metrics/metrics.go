package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QuotesCalculated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_calculated_total",
		Help: "Quotes successfully calculated, by property.",
	}, []string{"property"})

	QuoteErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_errors_total",
		Help: "Rejected quote calculations, by error kind.",
	}, []string{"kind"})

	MissingRateNights = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "missing_rate_nights_total",
		Help: "Nights priced at 0 because the month has no configured rate.",
	}, []string{"property", "month"})

	LogoFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_logo_fetch_total",
		Help: "Logo fetch attempts for PDF export, by result.",
	}, []string{"result"})

	PriceLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_table_loads_total",
		Help: "Price table load attempts, by result.",
	}, []string{"result"})
)

// Registry holds every collector of this service.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(QuotesCalculated, QuoteErrors, MissingRateNights, LogoFetches, PriceLoads)
}
