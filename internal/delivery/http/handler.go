package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunchradar/backend/internal/domain"
	"github.com/lunchradar/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	summarizer    usecase.MenuSummarizer
	subscriptions domain.SubscriptionRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(summarizer usecase.MenuSummarizer, subscriptions domain.SubscriptionRepository) *Handler {
	return &Handler{summarizer: summarizer, subscriptions: subscriptions}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lunchradar-backend",
	})
}

// Summarize returns the daily menu for a source, served from cache when
// possible. The error envelope matches what clients already expect:
// a generic message plus a detail string, with the error kind kept in logs.
func (h *Handler) Summarize(c *gin.Context) {
	var req domain.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	record, err := h.summarizer.Summarize(c.Request.Context(), req.URL, req.Force)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process the request.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// RegisterSubscription adds a notification target for a source
func (h *Handler) RegisterSubscription(c *gin.Context) {
	var req domain.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and target are required"})
		return
	}

	err := h.subscriptions.Register(c.Request.Context(), req.URL, req.Target)
	if errors.Is(err, domain.ErrDuplicateSubscription) {
		c.JSON(http.StatusConflict, gin.H{"error": "subscription already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process the request.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": req.URL, "target": req.Target})
}

// UnregisterSubscription removes a notification target for a source.
// Removing an absent pair succeeds.
func (h *Handler) UnregisterSubscription(c *gin.Context) {
	var req domain.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and target are required"})
		return
	}

	if err := h.subscriptions.Unregister(c.Request.Context(), req.URL, req.Target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process the request.",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
