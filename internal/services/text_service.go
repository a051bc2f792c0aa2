package services

import (
	"strconv"
	"strings"

	"quotebackend/internal/domain"
	"quotebackend/internal/pricing"
)

// ClipboardWriter writes plain text to a clipboard.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// QuoteText renders the quote for pasting into a chat or an email.
func QuoteText(q *pricing.Quote) (string, error) {
	if q == nil {
		return "", domain.ErrNoQuote
	}
	s := BuildSummary(q)

	var b strings.Builder
	b.WriteString(BrandName + " - Booking quote\n")
	b.WriteString(BrandSite + "\n\n")
	b.WriteString("Guest: " + s.Guest + "\n")
	b.WriteString("Property: " + s.Property + "\n")
	b.WriteString("Stay: " + s.Stay("to") + "\n")
	b.WriteString("Guests: " + strconv.Itoa(s.Guests) + "\n")
	b.WriteString(s.CheckTimes + "\n\n")

	b.WriteString("Nights per month:\n")
	for _, mn := range s.MonthNights {
		b.WriteString("- " + mn.Label + ": " + mn.Value + "\n")
	}
	b.WriteString("\n")

	for _, line := range s.Costs {
		b.WriteString(line.PlainLabel() + ": " + line.Value + "\n")
	}
	return b.String(), nil
}

// CopyQuote writes the text rendition to the clipboard. The text is returned
// even when the write fails so the caller can show it for manual copying.
func CopyQuote(q *pricing.Quote, cb ClipboardWriter) (string, error) {
	text, err := QuoteText(q)
	if err != nil {
		return "", err
	}
	if cb == nil {
		return text, domain.ClipboardError{}
	}
	if err := cb.WriteAll(text); err != nil {
		return text, domain.ClipboardError{Err: err}
	}
	return text, nil
}
