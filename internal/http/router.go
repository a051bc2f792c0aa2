package api

import (
	"embed"
	"html/template"
	"net/http"

	h "quotebackend/internal/http/handlers"
	"quotebackend/internal/http/middleware"
	"quotebackend/internal/metrics"
	"quotebackend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

func NewRouter(deps *h.Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warn().Err(err).Msg("failed to set trusted proxies")
	}
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/health", deps.Health)
		api.GET("/properties", deps.Properties)

		quotes := api.Group("/quotes")
		quotes.POST("", deps.CreateQuote)
		quotes.POST("/view", deps.ViewQuote)
		quotes.POST("/pdf", deps.QuotePDF)
		quotes.POST("/text", deps.QuoteText)

		api.POST("/auth/token", deps.IssueToken)

		admin := api.Group("/admin", middleware.RequireAdmin(deps.JWTSecret))
		admin.POST("/prices/reload", deps.ReloadPrices)
	}

	return r
}
