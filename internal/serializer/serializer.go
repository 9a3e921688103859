// Package serializer writes a report as the XML document defined by the
// irregular activity report schema.
//
// The output is a pure function of the report: element order follows the
// schema declaration order, absent values are omitted rather than written
// empty, and cross references are resolved through relation.Resolver.
package serializer

import (
	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Options controls cosmetic and namespace settings of the output.
type Options struct {
	Indent     string
	Namespaces Namespaces
}

// DefaultOptions returns two-space indentation and the published namespaces.
func DefaultOptions() Options {
	return Options{
		Indent:     "  ",
		Namespaces: DefaultNamespaces(),
	}
}

// Serializer converts reports to XML. It holds no per-report state and is
// safe for concurrent use.
type Serializer struct {
	opts Options
}

// New creates a serializer. Empty namespace URIs fall back to the defaults.
func New(opts Options) *Serializer {
	def := DefaultNamespaces()
	if opts.Namespaces.Default == "" {
		opts.Namespaces.Default = def.Default
	}
	if opts.Namespaces.Common == "" {
		opts.Namespaces.Common = def.Common
	}
	if opts.Namespaces.Enum == "" {
		opts.Namespaces.Enum = def.Enum
	}
	if opts.Namespaces.XSI == "" {
		opts.Namespaces.XSI = def.XSI
	}
	return &Serializer{opts: opts}
}

// Serialize renders r. It fails only when r is malformed (see ModelError);
// missing optional data is omitted.
func (s *Serializer) Serialize(r *report.Report) ([]byte, error) {
	b := &builder{
		w:   newWriter(s.opts.Indent),
		res: relation.New(r),
	}
	b.w.buf.WriteString(xmlHeader)

	ns := s.opts.Namespaces
	b.w.element("IrregularReport", func() {
		b.reportMetadata(&r.Metadata)
		b.sourceMetadata(&r.Source)
		b.relatedReports(r.RelatedReports)
		b.event(&r.Event)
	},
		attr{"xmlns", ns.Default},
		attr{"xmlns:" + prefixCommon, ns.Common},
		attr{"xmlns:" + prefixEnum, ns.Enum},
		attr{"xmlns:" + prefixXSI, ns.XSI},
		attr{"Version", r.Version},
	)

	if b.w.err != nil {
		return nil, b.w.err
	}
	return b.w.bytes(), nil
}

// Serialize renders r with DefaultOptions.
func Serialize(r *report.Report) ([]byte, error) {
	return New(DefaultOptions()).Serialize(r)
}

// builder walks one report. It lives for a single Serialize call.
type builder struct {
	w   *writer
	res *relation.Resolver
}
