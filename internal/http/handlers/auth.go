package handlers

import (
	"context"
	"net/http"
	"time"

	"quotebackend/internal/http/middleware"
	"quotebackend/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type tokenRequest struct {
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/token
func (h *Handlers) IssueToken(c *gin.Context) {
	if h.AdminPasswordHash == "" || len(h.JWTSecret) == 0 {
		respondError(c, http.StatusServiceUnavailable, "admin_disabled", "admin access not configured")
		return
	}
	var req tokenRequest
	if !bindOrError(c, &req) {
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.LogWarn(middleware.GetRequestID(c), "auth", "issue_token", "wrong admin password")
		respondError(c, http.StatusUnauthorized, "unauthorized", "wrong password")
		return
	}
	ttl := h.JWTTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	token, err := middleware.IssueAdminToken(h.JWTSecret, ttl, time.Now())
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "auth", "issue_token", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "could not sign token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(ttl.Seconds())})
}

// POST /api/admin/prices/reload
func (h *Handlers) ReloadPrices(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := h.Prices.Load(ctx); err != nil {
		respondError(c, http.StatusBadGateway, "reload_failed", "price reload failed: "+err.Error())
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "prices", "reload", "price table reloaded")
	c.JSON(http.StatusOK, gin.H{"prices": h.Prices.Status()})
}
