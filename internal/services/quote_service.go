package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quotebackend/internal/domain"
	"quotebackend/internal/metrics"
	"quotebackend/internal/pricing"
	"quotebackend/internal/utils"
)

// QuoteInput is the raw booking form.
type QuoteInput struct {
	GuestName       string   `json:"guestName" form:"guestName"`
	Property        string   `json:"property" form:"property"`
	CheckIn         string   `json:"checkIn" form:"checkIn"`
	CheckOut        string   `json:"checkOut" form:"checkOut"`
	Guests          int      `json:"guests" form:"guests"`
	DiscountPercent float64  `json:"discountPercent" form:"discountPercent"`
	DiscountEuro    float64  `json:"discountEuro" form:"discountEuro"`
	LinenIncluded   Checkbox `json:"linenIncluded" form:"linenIncluded"`
	HasPet          Checkbox `json:"hasPet" form:"hasPet"`
}

// Checkbox is a bool that also binds HTML checkbox form values ("on").
type Checkbox bool

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "yes":
		*c = true
		return nil
	case "", "off", "no":
		*c = false
		return nil
	}
	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("invalid checkbox value %q", param)
	}
	*c = Checkbox(v)
	return nil
}

// PriceLookup is the part of PriceStore the quote service needs.
type PriceLookup interface {
	Ready() bool
	Lookup(key string) (pricing.PropertyPrices, error)
}

type QuoteService struct {
	Prices    PriceLookup
	RequestID string
}

// Calculate validates the input and returns a new quote. Nothing is cached.
func (s QuoteService) Calculate(ctx context.Context, in QuoteInput) (*pricing.Quote, error) {
	q, err := s.calculate(ctx, in)
	if err != nil {
		metrics.QuoteErrors.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}
	metrics.QuotesCalculated.WithLabelValues(q.Stay.Property).Inc()
	utils.LogEvent(s.RequestID, "quote", "calculate",
		fmt.Sprintf("property=%s nights=%d total=%s", q.Stay.Property, q.Rent.Nights, utils.FormatMoney(q.Total)))
	return q, nil
}

func (s QuoteService) calculate(ctx context.Context, in QuoteInput) (*pricing.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Prices == nil || !s.Prices.Ready() {
		return nil, domain.ErrPricesNotReady
	}

	stay, err := ValidateStay(in)
	if err != nil {
		return nil, err
	}

	prices, err := s.Prices.Lookup(stay.Property)
	if err != nil {
		return nil, err
	}

	rent := pricing.ComputeRent(stay.CheckIn, stay.CheckOut, prices.Rates, func(night pricing.Date) {
		month := pricing.MonthKey(night.Month)
		metrics.MissingRateNights.WithLabelValues(stay.Property, month).Inc()
		utils.LogWarn(s.RequestID, "quote", "missing_rate",
			fmt.Sprintf("no rate for %s (%s), night %s priced at 0", month, stay.Property, night))
	})

	q := pricing.AssembleQuote(stay,
		rent,
		pricing.Fees{CleaningFee: prices.CleaningFee, LinenIncluded: bool(in.LinenIncluded), HasPet: bool(in.HasPet)},
		pricing.Discounts{Percent: in.DiscountPercent, Euro: in.DiscountEuro},
	)
	return &q, nil
}

// ValidateStay checks presence and ranges and resolves the property key.
func ValidateStay(in QuoteInput) (pricing.StayRequest, error) {
	selection := strings.TrimSpace(in.Property)
	if selection == "" {
		return pricing.StayRequest{}, domain.ValidationError{Field: "property", Msg: "select a property"}
	}
	if strings.TrimSpace(in.CheckIn) == "" || strings.TrimSpace(in.CheckOut) == "" {
		return pricing.StayRequest{}, domain.ValidationError{Field: "dates", Msg: "enter check-in and check-out dates"}
	}
	checkIn, err := pricing.ParseDate(in.CheckIn)
	if err != nil {
		return pricing.StayRequest{}, domain.ValidationError{Field: "checkIn", Msg: "invalid date", Err: err}
	}
	checkOut, err := pricing.ParseDate(in.CheckOut)
	if err != nil {
		return pricing.StayRequest{}, domain.ValidationError{Field: "checkOut", Msg: "invalid date", Err: err}
	}
	if !checkOut.After(checkIn) {
		return pricing.StayRequest{}, domain.ValidationError{Field: "checkOut", Msg: "the check-out date must be after the check-in date"}
	}
	if in.Guests <= 0 {
		return pricing.StayRequest{}, domain.ValidationError{Field: "guests", Msg: "enter a valid number of guests"}
	}
	key, ok := pricing.ResolveProperty(selection)
	if !ok {
		return pricing.StayRequest{}, domain.ValidationError{Field: "property", Msg: fmt.Sprintf("unknown property %q", selection)}
	}

	return pricing.StayRequest{
		GuestName: utils.NormalizeSpace(in.GuestName),
		Property:  key,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    in.Guests,
	}, nil
}

func errorKind(err error) string {
	switch {
	case domain.IsPricesNotReady(err):
		return "not_ready"
	case domain.IsValidation(err):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	default:
		return "internal"
	}
}
