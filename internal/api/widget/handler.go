package widget

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/service"
)

// Handler handles the public widget API
type Handler struct {
	widgetService *service.WidgetService
}

// NewHandler creates a new widget handler
func NewHandler(widgetService *service.WidgetService) *Handler {
	return &Handler{widgetService: widgetService}
}

// RegisterRoutes registers widget routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/config", h.GetConfig)
	r.POST("/conversations", h.StartConversation)
	r.GET("/conversations/:id", h.GetConversation)
	r.POST("/conversations/:id/messages", h.SendMessage)
	r.POST("/conversations/:id/reset", h.ResetConversation)
	r.GET("/conversations/:id/transcript", h.ExportTranscript)
}

// GetConfig returns the widget boot configuration
func (h *Handler) GetConfig(c *gin.Context) {
	config, err := h.widgetService.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, config)
}

// StartConversation opens a conversation for a niche and emits the greeting
func (h *Handler) StartConversation(c *gin.Context) {
	var req domain.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.widgetService.Start(c.Request.Context(), req.NicheID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "niche not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetConversation returns a conversation and its messages
func (h *Handler) GetConversation(c *gin.Context) {
	view, err := h.widgetService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// SendMessage handles one chat turn
func (h *Handler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.widgetService.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		case errors.Is(err, domain.ErrReplyInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a reply is already being generated"})
		case errors.Is(err, domain.ErrStaleGeneration):
			c.JSON(http.StatusConflict, gin.H{"error": "conversation was reset"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetConversation discards the conversation and starts over
func (h *Handler) ResetConversation(c *gin.Context) {
	view, err := h.widgetService.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ExportTranscript downloads the conversation as plain text
func (h *Handler) ExportTranscript(c *gin.Context) {
	id := c.Param("id")
	transcript, err := h.widgetService.Transcript(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=conversa-%s.txt", id))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript))
}
