package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quotebackend/internal/domain"
	"quotebackend/internal/metrics"
	"quotebackend/internal/pricing"
	"quotebackend/internal/repositories"
	"quotebackend/internal/utils"
)

// PriceStore holds the loaded price table. Lookups fail with ErrPricesNotReady
// until a load has succeeded.
type PriceStore struct {
	Source repositories.PriceSource

	mu       sync.RWMutex
	table    pricing.PriceTable
	loadErr  error
	loadedAt time.Time
}

// PriceStatus is a snapshot for health reporting.
type PriceStatus struct {
	Ready      bool      `json:"ready"`
	Properties int       `json:"properties"`
	LoadedAt   time.Time `json:"loadedAt,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func NewPriceStore(src repositories.PriceSource) *PriceStore {
	return &PriceStore{Source: src}
}

// Load replaces the table on success. On failure the previous table stays in place.
func (s *PriceStore) Load(ctx context.Context) error {
	if s.Source == nil {
		return fmt.Errorf("no price source configured")
	}
	table, err := s.Source.LoadPrices(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.loadErr = err
		metrics.PriceLoads.WithLabelValues("error").Inc()
		utils.LogError("", "prices", "load", err)
		return err
	}
	s.table = table
	s.loadErr = nil
	s.loadedAt = time.Now()
	metrics.PriceLoads.WithLabelValues("ok").Inc()
	utils.LogEvent("", "prices", "load", fmt.Sprintf("loaded %d properties", len(table)))
	return nil
}

// LoadAsync starts a background load; done is closed when it finishes.
func (s *PriceStore) LoadAsync(ctx context.Context) (done <-chan struct{}) {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		_ = s.Load(ctx)
	}()
	return ch
}

// Set installs a table directly.
func (s *PriceStore) Set(table pricing.PriceTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.loadErr = nil
	s.loadedAt = time.Now()
}

// Ready, Lookup, Keys and Status treat a nil store as never loaded.
func (s *PriceStore) Ready() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// Lookup returns the prices of a price-table key.
func (s *PriceStore) Lookup(key string) (pricing.PropertyPrices, error) {
	if s == nil {
		return pricing.PropertyPrices{}, domain.ErrPricesNotReady
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return pricing.PropertyPrices{}, domain.ErrPricesNotReady
	}
	p, ok := s.table[key]
	if !ok {
		return pricing.PropertyPrices{}, domain.NotFoundError{Resource: fmt.Sprintf("property %s in price data", key)}
	}
	return p, nil
}

// Keys lists loaded price-table keys.
func (s *PriceStore) Keys() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.table))
	for k := range s.table {
		out = append(out, k)
	}
	return out
}

func (s *PriceStore) Status() PriceStatus {
	if s == nil {
		return PriceStatus{Error: domain.ErrPricesNotReady.Error()}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := PriceStatus{
		Ready:      s.table != nil,
		Properties: len(s.table),
		LoadedAt:   s.loadedAt,
	}
	if s.loadErr != nil {
		st.Error = s.loadErr.Error()
	}
	return st
}
