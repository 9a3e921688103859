// Package storage holds rendered exports under one-time download tickets.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned for unknown, expired or already redeemed tickets.
var ErrTicketNotFound = errors.New("export ticket not found")

// StoredExport is a rendered export waiting to be downloaded.
type StoredExport struct {
	Ticket       string    `json:"ticket"`
	ExportID     string    `json:"export_id"`
	ReportNumber string    `json:"report_number"`
	Format       string    `json:"format"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	Content      []byte    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TicketStore keeps exports for a limited time. Take hands an export out
// once; Peek reads it without redeeming the ticket.
type TicketStore interface {
	Put(ctx context.Context, export *StoredExport, ttl time.Duration) (*StoredExport, error)
	Take(ctx context.Context, ticket string) (*StoredExport, error)
	Peek(ctx context.Context, ticket string) (*StoredExport, error)
	Close() error
}

func newTicket() string {
	return uuid.New().String()
}

// MemoryStore is a process-local TicketStore.
type MemoryStore struct {
	mu      sync.Mutex
	exports map[string]*StoredExport
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory ticket store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		exports: make(map[string]*StoredExport),
		now:     time.Now,
	}
}

// Put stores export under a fresh ticket.
func (s *MemoryStore) Put(ctx context.Context, export *StoredExport, ttl time.Duration) (*StoredExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()

	stored := *export
	stored.Ticket = newTicket()
	stored.CreatedAt = s.now().UTC()
	stored.ExpiresAt = stored.CreatedAt.Add(ttl)
	s.exports[stored.Ticket] = &stored

	out := stored
	return &out, nil
}

// Take returns and removes the export stored under ticket.
func (s *MemoryStore) Take(ctx context.Context, ticket string) (*StoredExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(ticket)
	if err != nil {
		return nil, err
	}
	delete(s.exports, ticket)
	return e, nil
}

// Peek returns the export stored under ticket without redeeming it.
func (s *MemoryStore) Peek(ctx context.Context, ticket string) (*StoredExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(ticket)
	if err != nil {
		return nil, err
	}
	out := *e
	return &out, nil
}

// Close releases nothing; it exists to satisfy TicketStore.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) lookup(ticket string) (*StoredExport, error) {
	e, ok := s.exports[ticket]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if !s.now().Before(e.ExpiresAt) {
		delete(s.exports, ticket)
		return nil, ErrTicketNotFound
	}
	return e, nil
}

func (s *MemoryStore) evictExpired() {
	now := s.now()
	for ticket, e := range s.exports {
		if !now.Before(e.ExpiresAt) {
			delete(s.exports, ticket)
		}
	}
}
