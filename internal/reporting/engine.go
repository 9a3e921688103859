package reporting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/audit"
	"github.com/aegisshield/irregular-report/internal/config"
	"github.com/aegisshield/irregular-report/internal/metrics"
	"github.com/aegisshield/irregular-report/internal/report"
	"github.com/aegisshield/irregular-report/internal/serializer"
)

// Export formats
const (
	FormatXML  = "xml"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Export statuses
const (
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var (
	// ErrUnsupportedFormat is returned for unknown or disabled formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrExportNotFound is returned by GetExportStatus for unknown exports.
	ErrExportNotFound = errors.New("export not found")
)

var contentTypes = map[string]string{
	FormatXML:  "application/xml",
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Export is a rendered report file.
type Export struct {
	ID           string    `json:"id"`
	ReportNumber string    `json:"report_number"`
	Format       string    `json:"format"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	Content      []byte    `json:"-"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ExportStatus represents the status of an export
type ExportStatus struct {
	ExportID     string    `json:"export_id"`
	ReportNumber string    `json:"report_number"`
	Format       string    `json:"format"`
	Status       string    `json:"status"`
	SizeBytes    int       `json:"size_bytes"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// ReportEngine renders reports into downloadable files
type ReportEngine struct {
	config     config.ReportingConfig
	logger     *zap.Logger
	serializer *serializer.Serializer
	metrics    *metrics.Collector
	audit      *audit.Logger
	statuses   map[string]*ExportStatus
	mu         sync.RWMutex
}

// NewReportEngine creates a new report engine instance. collector and
// auditLogger may be nil.
func NewReportEngine(cfg config.ReportingConfig, logger *zap.Logger, collector *metrics.Collector, auditLogger *audit.Logger) *ReportEngine {
	return &ReportEngine{
		config:     cfg,
		logger:     logger,
		serializer: serializer.New(SerializerOptions(cfg)),
		metrics:    collector,
		audit:      auditLogger,
		statuses:   make(map[string]*ExportStatus),
	}
}

// SerializerOptions maps reporting configuration onto serializer options.
func SerializerOptions(cfg config.ReportingConfig) serializer.Options {
	return serializer.Options{
		Indent: cfg.Indent,
		Namespaces: serializer.Namespaces{
			Default: cfg.Namespaces.Default,
			Common:  cfg.Namespaces.Common,
			Enum:    cfg.Namespaces.Enum,
			XSI:     cfg.Namespaces.XSI,
		},
	}
}

// Supports reports whether format is known and enabled.
func (re *ReportEngine) Supports(format string) bool {
	_, known := contentTypes[format]
	return known && re.config.FormatEnabled(format)
}

// Export renders r in format. A malformed report fails with an error
// wrapping *serializer.ModelError.
func (re *ReportEngine) Export(ctx context.Context, r *report.Report, format string) (*Export, error) {
	if !re.Supports(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	r = re.withVersion(r)
	export := &Export{
		ID:           re.generateExportID(),
		ReportNumber: r.Metadata.ReportNumber,
		Format:       format,
		FileName:     FileName(r.Metadata.ReportNumber, format),
		ContentType:  contentTypes[format],
	}

	started := time.Now()
	re.mu.Lock()
	re.statuses[export.ID] = &ExportStatus{
		ExportID:     export.ID,
		ReportNumber: export.ReportNumber,
		Format:       format,
		Status:       StatusGenerating,
		StartedAt:    started,
	}
	re.mu.Unlock()
	if re.metrics != nil {
		re.metrics.ExportStarted()
	}

	var content []byte
	var err error

	switch format {
	case FormatXML:
		content, err = re.serializer.Serialize(r)
	case FormatPDF:
		content, err = re.generatePDF(r)
	case FormatXLSX:
		content, err = re.generateExcel(r)
	}

	if err != nil {
		re.fail(ctx, export, started, err)
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	export.Content = content
	export.GeneratedAt = time.Now().UTC()
	re.complete(ctx, export, started)

	return export, nil
}

// GetExportStatus returns the status of an export
func (re *ReportEngine) GetExportStatus(exportID string) (*ExportStatus, error) {
	re.mu.RLock()
	defer re.mu.RUnlock()

	status, exists := re.statuses[exportID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrExportNotFound, exportID)
	}

	out := *status
	return &out, nil
}

// withVersion stamps the configured schema version on reports that carry
// none. The caller's report is not modified.
func (re *ReportEngine) withVersion(r *report.Report) *report.Report {
	if r.Version != "" || re.config.SchemaVersion == "" {
		return r
	}
	cp := *r
	cp.Version = re.config.SchemaVersion
	return &cp
}

func (re *ReportEngine) fail(ctx context.Context, export *Export, started time.Time, err error) {
	reason := "render"
	var modelErr *serializer.ModelError
	if errors.As(err, &modelErr) {
		reason = "model"
	}

	re.updateExportStatus(export.ID, StatusFailed, 0, err.Error())
	if re.metrics != nil {
		re.metrics.ExportFinished(export.Format, time.Since(started), 0, reason)
	}

	re.logger.Warn("Failed to render export",
		zap.String("export_id", export.ID),
		zap.String("report_number", export.ReportNumber),
		zap.String("format", export.Format),
		zap.String("reason", reason),
		zap.Error(err),
	)

	re.logAudit(ctx, audit.Entry{
		Action:       audit.ActionFailed,
		ExportID:     export.ID,
		ReportNumber: export.ReportNumber,
		Format:       export.Format,
		Result:       "failure",
		Error:        err.Error(),
	})
}

func (re *ReportEngine) complete(ctx context.Context, export *Export, started time.Time) {
	re.updateExportStatus(export.ID, StatusCompleted, len(export.Content), "")
	if re.metrics != nil {
		re.metrics.ExportFinished(export.Format, time.Since(started), len(export.Content), "")
	}

	re.logger.Info("Export rendered successfully",
		zap.String("export_id", export.ID),
		zap.String("report_number", export.ReportNumber),
		zap.String("format", export.Format),
		zap.Int("size_bytes", len(export.Content)),
	)

	re.logAudit(ctx, audit.Entry{
		Action:       audit.ActionRendered,
		ExportID:     export.ID,
		ReportNumber: export.ReportNumber,
		Format:       export.Format,
		SizeBytes:    len(export.Content),
	})
}

func (re *ReportEngine) logAudit(ctx context.Context, entry audit.Entry) {
	if re.audit == nil {
		return
	}
	if err := re.audit.Log(ctx, entry); err != nil {
		re.logger.Warn("Failed to write audit entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}

func (re *ReportEngine) updateExportStatus(exportID, status string, size int, message string) {
	re.mu.Lock()
	defer re.mu.Unlock()

	if s, exists := re.statuses[exportID]; exists {
		s.Status = status
		s.SizeBytes = size
		if status == StatusCompleted || status == StatusFailed {
			s.CompletedAt = time.Now()
		}
		if status == StatusFailed {
			s.Error = message
		}
	}
}

func (re *ReportEngine) generateExportID() string {
	return "EXP_" + uuid.New().String()
}
