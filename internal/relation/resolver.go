// Package relation turns the local cross-references of a report into the
// reference tokens written to the XML document.
package relation

import (
	"github.com/samber/lo"

	"github.com/aegisshield/irregular-report/internal/report"
)

// Kind is the kind of record a LocalID belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindEvent
	KindEntity
	KindAccount
	KindPledge
	KindTransaction
	KindAsset
	KindAttachment
)

// Context names where a relation sits in the document. It decides the
// relation's target kind and its "other" sentinel.
type Context int

const (
	EntityToEvent Context = iota
	EntityToEntity
	AccountToEvent
	AccountToEntity
	PledgeToEntity
	TransactionToEntity
	AssetToEntity
)

type contextRule struct {
	target   Kind
	sentinel int
}

var contextRules = map[Context]contextRule{
	EntityToEvent:       {target: KindEvent, sentinel: report.OtherCode},
	EntityToEntity:      {target: KindEntity, sentinel: report.OtherCode},
	AccountToEvent:      {target: KindEvent, sentinel: report.OtherCode},
	AccountToEntity:     {target: KindEntity, sentinel: report.OtherCode},
	PledgeToEntity:      {target: KindEntity, sentinel: report.OtherCode},
	TransactionToEntity: {target: KindEntity, sentinel: report.OtherCode},
	AssetToEntity:       {target: KindEntity, sentinel: report.OtherCode},
}

// Target returns the kind of record relations in ctx point at.
func (c Context) Target() Kind {
	return contextRules[c].target
}

// Sentinel returns the relation type code that makes free text meaningful in ctx.
func (c Context) Sentinel() int {
	return contextRules[c].sentinel
}

// Resolved is a relation ready for emission.
type Resolved struct {
	TypeCode int
	FreeText string
	Ref      string
	Target   Kind
}

// Resolver resolves relations of one report. It indexes every linkable
// record once; build a new Resolver per report.
type Resolver struct {
	eventID report.LocalID
	index   map[report.LocalID]Kind
}

// New indexes the identifiers of r. When an identifier is used twice the
// first record wins.
func New(r *report.Report) *Resolver {
	ev := &r.Event
	res := &Resolver{
		eventID: ev.LocalID,
		index:   make(map[report.LocalID]Kind),
	}

	res.add(ev.LocalID, KindEvent)
	for i := range ev.Entities {
		if base := ev.Entities[i].Base(); base != nil {
			res.add(base.LocalID, KindEntity)
		}
	}
	for i := range ev.Accounts {
		if base := ev.Accounts[i].Base(); base != nil {
			res.add(base.LocalID, KindAccount)
		}
	}
	for i := range ev.Pledges {
		res.add(ev.Pledges[i].LocalID, KindPledge)
	}
	for i := range ev.Transactions {
		tx := &ev.Transactions[i]
		res.add(tx.LocalID, KindTransaction)
		if tx.FinancialAsset != nil {
			res.add(tx.FinancialAsset.LocalID, KindAsset)
		}
	}
	for i := range ev.Attachments {
		res.add(ev.Attachments[i].LocalID, KindAttachment)
	}

	return res
}

func (r *Resolver) add(id report.LocalID, kind Kind) {
	if id.IsZero() {
		return
	}
	if _, exists := r.index[id]; !exists {
		r.index[id] = kind
	}
}

// EventRef returns the reference token of the report's event.
func (r *Resolver) EventRef() string {
	return r.eventID.String()
}

// Lookup returns the kind of record id belongs to.
func (r *Resolver) Lookup(id report.LocalID) Kind {
	return r.index[id]
}

// Ref returns the reference token for id when it names a record of kind.
func (r *Resolver) Ref(kind Kind, id report.LocalID) (string, bool) {
	if id.IsZero() || r.index[id] != kind {
		return "", false
	}
	return id.String(), true
}

// Refs resolves a list of identifiers of one kind, dropping the ones that
// do not resolve and keeping input order.
func (r *Resolver) Refs(kind Kind, ids []report.LocalID) []string {
	return lo.FilterMap(ids, func(id report.LocalID, _ int) (string, bool) {
		return r.Ref(kind, id)
	})
}

// Resolve turns rel into its emitted form. It reports false when the
// relation has no type code or its target cannot be resolved. Relations
// to the event always point at the report's event, whatever Target holds.
func (r *Resolver) Resolve(ctx Context, rel report.Relation) (Resolved, bool) {
	if rel.TypeCode == nil {
		return Resolved{}, false
	}

	rule, ok := contextRules[ctx]
	if !ok {
		return Resolved{}, false
	}

	var ref string
	if rule.target == KindEvent {
		ref = r.EventRef()
	} else {
		ref, _ = r.Ref(rule.target, rel.Target)
	}
	if ref == "" {
		return Resolved{}, false
	}

	out := Resolved{
		TypeCode: *rel.TypeCode,
		Ref:      ref,
		Target:   rule.target,
	}
	if out.TypeCode == rule.sentinel {
		out.FreeText = rel.FreeText
	}
	return out, true
}

// ResolveAll resolves rels in order, dropping the ones Resolve rejects.
func (r *Resolver) ResolveAll(ctx Context, rels []report.Relation) []Resolved {
	return lo.FilterMap(rels, func(rel report.Relation, _ int) (Resolved, bool) {
		return r.Resolve(ctx, rel)
	})
}
