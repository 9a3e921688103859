package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/audit"
	"github.com/aegisshield/irregular-report/internal/metrics"
	"github.com/aegisshield/irregular-report/internal/report"
	"github.com/aegisshield/irregular-report/internal/reporting"
	"github.com/aegisshield/irregular-report/internal/serializer"
	"github.com/aegisshield/irregular-report/internal/storage"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportEngine *reporting.ReportEngine
	store        storage.TicketStore
	auditLogger  *audit.Logger
	metrics      *metrics.Collector
	ticketTTL    time.Duration
	maxBodyBytes int64
	logger       *zap.Logger
}

// Options holds the tunables of ReportHandler.
type Options struct {
	TicketTTL    time.Duration
	MaxBodyBytes int64
}

// NewReportHandler creates a new report handler. auditLogger and collector
// may be nil.
func NewReportHandler(
	reportEngine *reporting.ReportEngine,
	store storage.TicketStore,
	auditLogger *audit.Logger,
	collector *metrics.Collector,
	opts Options,
	logger *zap.Logger,
) *ReportHandler {
	if opts.TicketTTL <= 0 {
		opts.TicketTTL = 10 * time.Minute
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}
	return &ReportHandler{
		reportEngine: reportEngine,
		store:        store,
		auditLogger:  auditLogger,
		metrics:      collector,
		ticketTTL:    opts.TicketTTL,
		maxBodyBytes: opts.MaxBodyBytes,
		logger:       logger,
	}
}

// RegisterRoutes registers the export routes. middleware guards the
// /api/v1 group only; /health stays open.
func (h *ReportHandler) RegisterRoutes(router *gin.Engine, middleware ...gin.HandlerFunc) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api/v1", middleware...)

	// Export endpoints
	api.POST("/reports/render", h.RenderReport)
	api.POST("/reports/exports", h.CreateExport)
	api.GET("/reports/exports/:ticket", h.DownloadExport)
	api.GET("/reports/exports/:ticket/status", h.GetExportStatus)

	// Audit endpoints
	api.GET("/audit/logs", h.GetAuditLogs)
}

// RenderReport renders the posted report and returns it as a file.
func (h *ReportHandler) RenderReport(c *gin.Context) {
	export, ok := h.export(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}

// CreateExport renders the posted report and stores it under a one-time
// download ticket.
func (h *ReportHandler) CreateExport(c *gin.Context) {
	export, ok := h.export(c)
	if !ok {
		return
	}

	stored, err := h.store.Put(c.Request.Context(), &storage.StoredExport{
		ExportID:     export.ID,
		ReportNumber: export.ReportNumber,
		Format:       export.Format,
		FileName:     export.FileName,
		ContentType:  export.ContentType,
		Content:      export.Content,
	}, h.ticketTTL)
	if err != nil {
		h.logger.Error("Failed to store export", zap.String("export_id", export.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store export"})
		return
	}

	if h.metrics != nil {
		h.metrics.TicketIssued()
	}
	h.logAudit(c, audit.Entry{
		Action:       audit.ActionStored,
		ExportID:     export.ID,
		ReportNumber: export.ReportNumber,
		Format:       export.Format,
		SizeBytes:    len(export.Content),
	})

	c.JSON(http.StatusCreated, gin.H{
		"ticket":     stored.Ticket,
		"export_id":  export.ID,
		"file_name":  stored.FileName,
		"expires_at": stored.ExpiresAt,
	})
}

// DownloadExport redeems a ticket. A ticket can be downloaded once.
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	ticket := c.Param("ticket")

	stored, err := h.store.Take(c.Request.Context(), ticket)
	if errors.Is(err, storage.ErrTicketNotFound) {
		if h.metrics != nil {
			h.metrics.TicketRedeemed(false)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Export not found or expired"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load export", zap.String("ticket", ticket), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load export"})
		return
	}

	if h.metrics != nil {
		h.metrics.TicketRedeemed(true)
	}
	h.logAudit(c, audit.Entry{
		Action:       audit.ActionDownloaded,
		ExportID:     stored.ExportID,
		ReportNumber: stored.ReportNumber,
		Format:       stored.Format,
		SizeBytes:    len(stored.Content),
	})

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, stored.FileName))
	c.Data(http.StatusOK, stored.ContentType, stored.Content)
}

// GetExportStatus describes a pending ticket without redeeming it.
func (h *ReportHandler) GetExportStatus(c *gin.Context) {
	ticket := c.Param("ticket")

	stored, err := h.store.Peek(c.Request.Context(), ticket)
	if errors.Is(err, storage.ErrTicketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Export not found or expired"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load export", zap.String("ticket", ticket), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load export"})
		return
	}

	response := gin.H{
		"ticket":        stored.Ticket,
		"export_id":     stored.ExportID,
		"report_number": stored.ReportNumber,
		"format":        stored.Format,
		"file_name":     stored.FileName,
		"size_bytes":    len(stored.Content),
		"created_at":    stored.CreatedAt,
		"expires_at":    stored.ExpiresAt,
	}
	if status, err := h.reportEngine.GetExportStatus(stored.ExportID); err == nil {
		response["status"] = status.Status
	}

	c.JSON(http.StatusOK, response)
}

// GetAuditLogs lists audit entries, newest first.
func (h *ReportHandler) GetAuditLogs(c *gin.Context) {
	if h.auditLogger == nil {
		c.JSON(http.StatusOK, gin.H{"logs": []*audit.Entry{}, "count": 0})
		return
	}

	filters := audit.Filters{
		Action:       c.Query("action"),
		ReportNumber: c.Query("report_number"),
		UserID:       c.Query("user_id"),
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an RFC 3339 timestamp"})
			return
		}
		filters.Since = &t
	}

	var err error
	if filters.Limit, err = queryInt(c, "limit", 100); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filters.Offset, err = queryInt(c, "offset", 0); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs := h.auditLogger.Query(filters)
	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"count":  len(logs),
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// HealthCheck reports service liveness.
func (h *ReportHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "irregular-report",
	})
}

// export decodes the request body and renders it in the requested format.
// It writes the error response itself and reports false on failure.
func (h *ReportHandler) export(c *gin.Context) (*reporting.Export, bool) {
	format := c.DefaultQuery("format", reporting.FormatXML)
	if !h.reportEngine.Supports(format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return nil, false
	}

	r, err := report.DecodeJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	export, err := h.reportEngine.Export(c.Request.Context(), r, format)
	if err != nil {
		var modelErr *serializer.ModelError
		switch {
		case errors.As(err, &modelErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": modelErr.Reason,
				"path":  modelErr.Path,
				"field": modelErr.Field,
			})
		case errors.Is(err, reporting.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to export report", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		}
		return nil, false
	}

	return export, true
}

func (h *ReportHandler) logAudit(c *gin.Context, entry audit.Entry) {
	if h.auditLogger == nil {
		return
	}
	if err := h.auditLogger.Log(c.Request.Context(), entry); err != nil {
		h.logger.Warn("Failed to write audit entry", zap.String("action", entry.Action), zap.Error(err))
	}
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}
