package handlers

import (
	"net/http"

	"quotebackend/internal/pricing"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	st := h.Prices.Status()
	status := http.StatusOK
	state := "ok"
	if !st.Ready {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "prices": st})
}

type propertyOption struct {
	Value  string `json:"value"`
	Key    string `json:"key"`
	Priced bool   `json:"priced"`
}

// Properties lists the selectable properties and whether the price data covers them.
func (h *Handlers) Properties(c *gin.Context) {
	loaded := map[string]bool{}
	for _, k := range h.Prices.Keys() {
		loaded[k] = true
	}
	out := make([]propertyOption, 0, len(pricing.PropertyKeys))
	for _, sel := range pricing.Selections() {
		key := pricing.PropertyKeys[sel]
		out = append(out, propertyOption{Value: sel, Key: key, Priced: loaded[key]})
	}
	c.JSON(http.StatusOK, gin.H{"properties": out, "ready": h.Prices.Ready()})
}
