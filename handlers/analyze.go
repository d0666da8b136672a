package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sentiment-insight/analyzer"
	"sentiment-insight/models"
)

// Handler exposes the analyzer over HTTP.
type Handler struct {
	analyzer *analyzer.Analyzer
	metrics  *Metrics
	log      *zap.Logger
}

// New builds a handler around an analyzer.
func New(a *analyzer.Analyzer, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{analyzer: a, metrics: &Metrics{}, log: log}
}

// Register attaches all routes and middleware to the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.requestLogger())

	r.GET("/health", h.Health)
	r.GET("/metrics", h.MetricsHandler)
	r.POST("/analyze", h.Analyze)
	r.POST("/analyze-batch", h.AnalyzeBatch)
}

// Health returns a static liveness payload.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze handles POST /analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordError()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// AnalyzeBatch handles POST /analyze-batch.
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordError()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	results, err := h.analyzer.AnalyzeBatch(c.Request.Context(), req.Texts)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BatchResponse{Results: results})
}

// fail distinguishes client-caused validation errors from pipeline
// failures.
func (h *Handler) fail(c *gin.Context, err error) {
	h.metrics.RecordError()

	var verr *analyzer.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	h.log.Error("analysis failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
}

// requestLogger tags each request with a correlation id and logs its
// outcome.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)

		c.Next()

		h.metrics.RecordRequest(time.Since(start))
		h.log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
