package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/config"
)

// Audit actions
const (
	ActionRendered   = "export.rendered"
	ActionFailed     = "export.failed"
	ActionStored     = "export.stored"
	ActionDownloaded = "export.downloaded"
)

// Entry is one audit trail record of an export.
type Entry struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ExportID     string    `json:"export_id,omitempty"`
	ReportNumber string    `json:"report_number,omitempty"`
	Format       string    `json:"format,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	SizeBytes    int       `json:"size_bytes,omitempty"`
	Result       string    `json:"result"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Filters narrows a Query.
type Filters struct {
	Action       string
	ReportNumber string
	UserID       string
	Since        *time.Time
	Limit        int
	Offset       int
}

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	ipAddressKey contextKey = "ip_address"
)

// WithUser returns a context carrying the caller's identity for audit entries.
func WithUser(ctx context.Context, userID, ipAddress string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, ipAddressKey, ipAddress)
}

// Logger manages the export audit trail
type Logger struct {
	config      config.AuditConfig
	logger      *zap.Logger
	entries     []*Entry
	mu          sync.RWMutex
	running     bool
	stopChan    chan struct{}
	done        chan struct{}
	logChannel  chan *Entry
	batchBuffer []*Entry
	lastFlush   time.Time
}

// NewLogger creates a new audit logger instance
func NewLogger(cfg config.AuditConfig, logger *zap.Logger) *Logger {
	return &Logger{
		config:      cfg,
		logger:      logger,
		entries:     make([]*Entry, 0),
		logChannel:  make(chan *Entry, cfg.BufferSize),
		batchBuffer: make([]*Entry, 0, cfg.BatchSize),
		lastFlush:   time.Now(),
	}
}

// Start starts the background batching loop
func (al *Logger) Start(ctx context.Context) error {
	al.mu.Lock()
	defer al.mu.Unlock()

	if al.running {
		return fmt.Errorf("audit logger is already running")
	}

	al.stopChan = make(chan struct{})
	al.done = make(chan struct{})
	go al.processingLoop(ctx)

	al.running = true
	al.logger.Info("Audit logger started", zap.Bool("enabled", al.config.Enabled))

	return nil
}

// Stop drains pending entries and stops the loop
func (al *Logger) Stop(ctx context.Context) error {
	al.mu.Lock()
	if !al.running {
		al.mu.Unlock()
		return nil
	}
	al.running = false
	close(al.stopChan)
	al.mu.Unlock()

	select {
	case <-al.done:
	case <-ctx.Done():
		return fmt.Errorf("failed to stop audit logger: %w", ctx.Err())
	}

	al.logger.Info("Audit logger stopped")
	return nil
}

// Log records an audit entry. Caller identity is taken from ctx when
// present (see WithUser). Disabled trails accept and discard entries.
func (al *Logger) Log(ctx context.Context, entry Entry) error {
	if !al.config.Enabled {
		return nil
	}

	entry.ID = uuid.New().String()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Result == "" {
		entry.Result = "success"
	}
	if v, ok := ctx.Value(userIDKey).(string); ok && entry.UserID == "" {
		entry.UserID = v
	}
	if v, ok := ctx.Value(ipAddressKey).(string); ok && entry.IPAddress == "" {
		entry.IPAddress = v
	}

	// The read lock is held across the send so Stop cannot drain the
	// channel between the running check and the send.
	al.mu.RLock()
	defer al.mu.RUnlock()
	if !al.running {
		return fmt.Errorf("audit logger is not running")
	}

	select {
	case al.logChannel <- &entry:
		return nil
	default:
		al.logger.Warn("Audit log channel full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("export_id", entry.ExportID),
		)
		return fmt.Errorf("audit log channel full")
	}
}

// Query returns stored entries matching filters, newest first.
func (al *Logger) Query(filters Filters) []*Entry {
	al.mu.RLock()
	defer al.mu.RUnlock()

	matched := make([]*Entry, 0)
	for _, e := range al.entries {
		if matchesFilters(e, filters) {
			cp := *e
			matched = append(matched, &cp)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filters.Offset >= len(matched) {
		return []*Entry{}
	}
	matched = matched[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched
}

func (al *Logger) processingLoop(ctx context.Context) {
	defer close(al.done)

	interval := al.config.FlushInterval
	if interval <= 0 {
		interval = time.Second
	}
	batchTicker := time.NewTicker(interval)
	defer batchTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			al.mu.Lock()
			al.running = false
			al.mu.Unlock()
			al.drain()
			return
		case <-al.stopChan:
			al.drain()
			return
		case entry := <-al.logChannel:
			al.addToBatch(entry)
		case <-batchTicker.C:
			al.flushBatchIfNeeded()
		}
	}
}

// drain moves everything still buffered in the channel into the store.
func (al *Logger) drain() {
	for {
		select {
		case entry := <-al.logChannel:
			al.addToBatch(entry)
		default:
			al.mu.Lock()
			al.flushBatch()
			al.mu.Unlock()
			return
		}
	}
}

func (al *Logger) addToBatch(entry *Entry) {
	al.mu.Lock()
	defer al.mu.Unlock()

	al.batchBuffer = append(al.batchBuffer, entry)

	if len(al.batchBuffer) >= al.config.BatchSize {
		al.flushBatch()
	}
}

func (al *Logger) flushBatchIfNeeded() {
	al.mu.Lock()
	defer al.mu.Unlock()

	if len(al.batchBuffer) > 0 && time.Since(al.lastFlush) >= al.config.FlushInterval {
		al.flushBatch()
	}
}

// flushBatch must be called with al.mu held.
func (al *Logger) flushBatch() {
	if len(al.batchBuffer) == 0 {
		return
	}

	for _, e := range al.batchBuffer {
		al.logger.Info("Audit event",
			zap.String("audit_id", e.ID),
			zap.String("action", e.Action),
			zap.String("export_id", e.ExportID),
			zap.String("report_number", e.ReportNumber),
			zap.String("format", e.Format),
			zap.String("user_id", e.UserID),
			zap.String("result", e.Result),
		)
	}

	al.entries = append(al.entries, al.batchBuffer...)
	if max := al.config.MaxEntries; max > 0 && len(al.entries) > max {
		al.entries = append([]*Entry(nil), al.entries[len(al.entries)-max:]...)
	}

	al.batchBuffer = al.batchBuffer[:0]
	al.lastFlush = time.Now()
}

func matchesFilters(e *Entry, f Filters) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.ReportNumber != "" && e.ReportNumber != f.ReportNumber {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Since != nil && e.Timestamp.Before(*f.Since) {
		return false
	}
	return true
}
