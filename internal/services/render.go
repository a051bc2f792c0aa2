package services

import (
	"fmt"

	"quotebackend/internal/pricing"
	"quotebackend/internal/utils"
)

const (
	BrandName  = "Sardinian Seaside Retreats"
	BrandSite  = "www.sardinianseasideretreats.com"
	CheckTimes = "Check-in after 4:00 PM · Check-out by 10:00 AM"

	amountEpsilon = 0.0001
)

// SummaryLine is one label/value row.
type SummaryLine struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Discount bool   `json:"discount,omitempty"`
	Total    bool   `json:"total,omitempty"`

	short string
}

// PlainLabel is the label used by the text and PDF renditions, which drop
// on-screen hints such as "(not included)".
func (l SummaryLine) PlainLabel() string {
	switch {
	case l.Total:
		return "TOTAL"
	case l.short != "":
		return l.short
	}
	return l.Label
}

// QuoteSummary is the presentation form of a quote, shared by HTML, PDF and text output.
type QuoteSummary struct {
	Guest       string        `json:"guest"`
	Property    string        `json:"property"`
	CheckIn     string        `json:"checkIn"`
	CheckOut    string        `json:"checkOut"`
	Nights      int           `json:"nights"`
	Guests      int           `json:"guests"`
	CheckTimes  string        `json:"checkTimes"`
	MonthNights []SummaryLine `json:"monthNights"`
	Costs       []SummaryLine `json:"costs"`
	Total       string        `json:"total"`
}

// Stay renders "dd/mm/yyyy <sep> dd/mm/yyyy (N nights)".
func (s QuoteSummary) Stay(sep string) string {
	return fmt.Sprintf("%s %s %s (%d nights)", s.CheckIn, sep, s.CheckOut, s.Nights)
}

// BuildSummary formats a quote. Rounding happens here and nowhere earlier.
func BuildSummary(q *pricing.Quote) QuoteSummary {
	s := QuoteSummary{
		Guest:      utils.Fallback(q.Stay.GuestName, "-"),
		Property:   q.Stay.Property,
		CheckIn:    q.Stay.CheckIn.Display(),
		CheckOut:   q.Stay.CheckOut.Display(),
		Nights:     q.Rent.Nights,
		Guests:     q.Stay.Guests,
		CheckTimes: CheckTimes,
		Total:      utils.FormatEuro(q.Total),
	}

	for _, mn := range q.Rent.NightsByMonth {
		s.MonthNights = append(s.MonthNights, SummaryLine{
			Label: pricing.MonthLabel(mn.Month),
			Value: fmt.Sprintf("%d nights", mn.Nights),
		})
	}

	add := func(label string, amount float64) {
		s.Costs = append(s.Costs, SummaryLine{Label: label, Value: utils.FormatEuro(amount)})
	}
	sub := func(label string, amount float64) {
		s.Costs = append(s.Costs, SummaryLine{Label: label, Value: "-" + utils.FormatEuro(amount), Discount: true})
	}

	add("Rental (full price)", q.Rent.RentTotal)
	if q.PercentDiscountAmount > amountEpsilon {
		sub(fmt.Sprintf("Discount on rental (%s%%)", utils.FormatPercent(q.DiscountPercent)), q.PercentDiscountAmount)
		add("Rental after discount", q.RentAfterPercent)
	}
	add("Cleaning fee", q.CleaningFee)
	if q.LinenFee > 0 {
		add("Linen", q.LinenFee)
	} else {
		s.Costs = append(s.Costs, SummaryLine{Label: "Linen (not included)", Value: utils.FormatEuro(q.LinenFee), short: "Linen"})
	}
	if q.PetFee > 0 {
		add("Pet fee", q.PetFee)
	}
	add("Subtotal", q.Subtotal)
	if q.DiscountEuro > amountEpsilon {
		sub("Additional discount", q.DiscountEuro)
	}
	s.Costs = append(s.Costs, SummaryLine{Label: "TOTAL QUOTE", Value: s.Total, Total: true})
	return s
}
