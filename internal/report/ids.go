package report

import (
	"github.com/google/uuid"
)

// LocalID is a process-local token used to link one part of a report to
// another before serialization. It carries no schema identity.
type LocalID string

// NewLocalID returns a fresh identifier.
func NewLocalID() LocalID {
	return LocalID(uuid.New().String())
}

// String returns the identifier text.
func (id LocalID) String() string {
	return string(id)
}

// IsZero reports whether the identifier was never assigned.
func (id LocalID) IsZero() bool {
	return id == ""
}

// EnsureLocalIDs assigns identifiers to linkable records that arrived
// without one, e.g. a report decoded from JSON. Existing identifiers are
// never replaced.
func (r *Report) EnsureLocalIDs() {
	ensure := func(id *LocalID) {
		if id.IsZero() {
			*id = NewLocalID()
		}
	}

	ev := &r.Event
	ensure(&ev.LocalID)

	for i := range ev.Entities {
		if base := ev.Entities[i].Base(); base != nil {
			ensure(&base.LocalID)
		}
	}
	for i := range ev.Accounts {
		if base := ev.Accounts[i].Base(); base != nil {
			ensure(&base.LocalID)
		}
	}
	for i := range ev.Pledges {
		ensure(&ev.Pledges[i].LocalID)
	}
	for i := range ev.Transactions {
		tx := &ev.Transactions[i]
		ensure(&tx.LocalID)
		if tx.FinancialAsset != nil {
			ensure(&tx.FinancialAsset.LocalID)
		}
	}
	for i := range ev.Attachments {
		ensure(&ev.Attachments[i].LocalID)
	}
}
