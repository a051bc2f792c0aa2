package handlers

import (
	"net/http"
	"time"

	"quotebackend/internal/http/middleware"
	"quotebackend/internal/pricing"
	"quotebackend/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers carries the dependencies of the HTTP API.
type Handlers struct {
	Prices *services.PriceStore
	Logo   services.LogoFetcher

	AdminPasswordHash string
	JWTSecret         []byte
	JWTTTL            time.Duration
}

type quoteResponse struct {
	Quote   *pricing.Quote        `json:"quote"`
	Summary services.QuoteSummary `json:"summary"`
}

// calculate binds the form and computes a fresh quote, answering on error.
func (h *Handlers) calculate(c *gin.Context) (*pricing.Quote, bool) {
	var in services.QuoteInput
	if !bindOrError(c, &in) {
		return nil, false
	}
	svc := services.QuoteService{Prices: h.Prices, RequestID: middleware.GetRequestID(c)}
	q, err := svc.Calculate(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return q, true
}

// POST /api/quotes
func (h *Handlers) CreateQuote(c *gin.Context) {
	q, ok := h.calculate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, quoteResponse{Quote: q, Summary: services.BuildSummary(q)})
}

// POST /api/quotes/view
func (h *Handlers) ViewQuote(c *gin.Context) {
	q, ok := h.calculate(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "quote.html", services.BuildSummary(q))
}

// POST /api/quotes/pdf
func (h *Handlers) QuotePDF(c *gin.Context) {
	q, ok := h.calculate(c)
	if !ok {
		return
	}
	svc := services.DocsService{Logo: h.Logo, RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateQuotePDF(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// POST /api/quotes/text
func (h *Handlers) QuoteText(c *gin.Context) {
	q, ok := h.calculate(c)
	if !ok {
		return
	}
	text, err := services.QuoteText(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}
