package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"quotebackend/internal/domain"
	"quotebackend/internal/metrics"
	"quotebackend/internal/pricing"
	"quotebackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const (
	defaultLogoTimeout = 3 * time.Second
	maxLogoBytes       = 2 << 20
)

// Logo is an image ready to embed in a PDF.
type Logo struct {
	Data      []byte
	ImageType string // "PNG" or "JPG"
}

type LogoFetcher interface {
	FetchLogo(ctx context.Context) (*Logo, error)
}

// HTTPLogoFetcher downloads the logo with a bounded timeout.
type HTTPLogoFetcher struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func (f HTTPLogoFetcher) FetchLogo(ctx context.Context) (*Logo, error) {
	if f.URL == "" {
		return nil, fmt.Errorf("logo url not configured")
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultLogoTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxLogoBytes {
		return nil, fmt.Errorf("logo: larger than %d bytes", maxLogoBytes)
	}
	return DecodeLogo(data)
}

// DecodeLogo validates the image header and picks the gofpdf image type.
func DecodeLogo(data []byte) (*Logo, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	switch format {
	case "png":
		return &Logo{Data: data, ImageType: "PNG"}, nil
	case "jpeg":
		return &Logo{Data: data, ImageType: "JPG"}, nil
	default:
		return nil, fmt.Errorf("logo: unsupported format %s", format)
	}
}

// DocsService renders the quote PDF.
type DocsService struct {
	Logo      LogoFetcher
	RequestID string
}

// GenerateQuotePDF fetches the logo (best effort) and then lays out the document.
func (s DocsService) GenerateQuotePDF(ctx context.Context, q *pricing.Quote) ([]byte, string, error) {
	if q == nil {
		return nil, "", domain.ErrNoQuote
	}
	logo := s.acquireLogo(ctx)
	utils.LogEvent(s.RequestID, "docs", "generate_quote_pdf",
		fmt.Sprintf("property=%s logo=%t", q.Stay.Property, logo != nil))
	return buildQuotePDF(BuildSummary(q), logo)
}

func (s DocsService) acquireLogo(ctx context.Context) *Logo {
	if s.Logo == nil {
		return nil
	}
	logo, err := s.Logo.FetchLogo(ctx)
	if err != nil {
		metrics.LogoFetches.WithLabelValues("error").Inc()
		utils.LogWarn(s.RequestID, "docs", "fetch_logo", "logo not loaded, building PDF without it: "+err.Error())
		return nil
	}
	metrics.LogoFetches.WithLabelValues("ok").Inc()
	return logo
}

// QuotePDFFilename is quote_<guest>.pdf with whitespace replaced by underscores.
func QuotePDFFilename(guest string) string {
	if guest == "-" {
		guest = ""
	}
	return fmt.Sprintf("quote_%s.pdf", utils.SafeFilenamePart(guest, "guest"))
}

func buildQuotePDF(s QuoteSummary, logo *Logo) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking quote", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if logo != nil {
		opts := gofpdf.ImageOptions{ImageType: logo.ImageType}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo.Data))
		pdf.ImageOptions("logo", 10, 8, 20, 20, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(35, 18, tr(BrandName))
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(35, 24, "Booking quote")
	pdf.SetFontSize(10)
	pdf.Text(35, 29, BrandSite)

	const left, right = 10.0, 200.0
	y := 40.0
	line := func(text string, step, x float64) {
		pdf.Text(x, y, tr(text))
		y += step
	}

	pdf.SetFontSize(11)
	line("Guest: "+s.Guest, 7, left)
	line("Property: "+s.Property, 7, left)
	line("Stay: "+s.Stay("to"), 7, left)
	line(fmt.Sprintf("Guests: %d", s.Guests), 7, left)
	line(s.CheckTimes, 7, left)
	y += 4

	pdf.SetFont("Helvetica", "B", 11)
	line("Nights per month:", 7, left)
	pdf.SetFont("Helvetica", "", 11)
	for _, mn := range s.MonthNights {
		line(fmt.Sprintf("- %s: %s", mn.Label, mn.Value), 6, left+4)
	}
	y += 4

	for _, c := range s.Costs {
		style := ""
		if c.Total {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		value := tr(c.Value)
		pdf.Text(left, y, tr(c.PlainLabel()))
		pdf.Text(right-pdf.GetStringWidth(value), y, value)
		y += 6
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render PDF", Err: err}
	}
	return buf.Bytes(), QuotePDFFilename(s.Guest), nil
}
