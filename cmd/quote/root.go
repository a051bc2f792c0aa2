package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quotebackend/internal/domain"
	"quotebackend/internal/repositories"
	"quotebackend/internal/services"
	"quotebackend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	prices   string
	logoURL  string
	pdfPath  string
	copy     bool
	logLevel string
	input    services.QuoteInput
}

func newRootCmd(cb services.ClipboardWriter) *cobra.Command {
	_ = godotenv.Load()

	opts := options{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate a booking quote for a rental property",
		Long: `quote prices a stay night by night using the month rates in prezzi.json,
adds cleaning, linen and pet fees, applies discounts and prints the quote.
Use --pdf to save a PDF copy and --copy to put the text on the clipboard.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, opts, cb)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.prices, "prices", envOr("PRICES_PATH", "data/prezzi.json"), "price table file or http(s) URL")
	f.StringVar(&opts.logoURL, "logo-url", os.Getenv("LOGO_URL"), "logo image embedded in the PDF (best effort)")
	f.StringVar(&opts.pdfPath, "pdf", "", "write the quote PDF to this file or directory")
	f.BoolVar(&opts.copy, "copy", false, "copy the quote text to the clipboard")
	f.StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level")

	f.StringVar(&opts.input.GuestName, "name", "", "guest name")
	f.StringVar(&opts.input.Property, "property", "", "property (asfodelo, corbezzolo, rosmarino, acquamarina, beachside-retreats, villa-jolies)")
	f.StringVar(&opts.input.CheckIn, "checkin", "", "check-in date YYYY-MM-DD")
	f.StringVar(&opts.input.CheckOut, "checkout", "", "check-out date YYYY-MM-DD")
	f.IntVar(&opts.input.Guests, "guests", 0, "number of guests")
	f.Float64Var(&opts.input.DiscountPercent, "discount", 0, "discount on rental in percent (0-100)")
	f.Float64Var(&opts.input.DiscountEuro, "discount-euro", 0, "fixed discount on the subtotal")
	f.BoolVar((*bool)(&opts.input.LinenIncluded), "linen", false, "include linen")
	f.BoolVar((*bool)(&opts.input.HasPet), "pet", false, "guest brings a pet")

	return cmd
}

func runQuote(cmd *cobra.Command, opts options, cb services.ClipboardWriter) error {
	utils.InitLogger(opts.logLevel, "console", cmd.ErrOrStderr())
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	store := services.NewPriceStore(repositories.FilePriceSource{Path: opts.prices})
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("price data could not be loaded (%s): %w", opts.prices, err)
	}

	q, err := services.QuoteService{Prices: store}.Calculate(ctx, opts.input)
	if err != nil {
		return err
	}

	text, err := services.QuoteText(q)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)

	if opts.pdfPath != "" {
		var logo services.LogoFetcher
		if opts.logoURL != "" {
			logo = services.HTTPLogoFetcher{URL: opts.logoURL}
		}
		pdf, filename, err := services.DocsService{Logo: logo}.GenerateQuotePDF(ctx, q)
		if err != nil {
			return err
		}
		path := opts.pdfPath
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			path = filepath.Join(path, filename)
		}
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "PDF saved to %s\n", path)
	}

	if opts.copy {
		if _, err := services.CopyQuote(q, cb); err != nil {
			if !domain.IsClipboard(err) {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not copy to the clipboard (%v). Copy the quote above manually.\n", err)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Quote copied to the clipboard.")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
