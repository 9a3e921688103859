package serializer

import (
	"encoding/xml"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisshield/irregular-report/internal/report"
)

func minimalReport() *report.Report {
	r := report.NewReport()
	r.Metadata.ReportNumber = "R-1"
	r.Source.ReportingPerson.FirstName = "Dana"
	r.Source.ReportingPerson.LastName = "Levi"
	r.Event.EventDateTime = "2024-03-01T10:00:00"
	r.Event.BriefDescription = "Structured cash deposits"
	r.Event.FullDescription = "Several deposits just below the reporting threshold."
	return r
}

func render(t *testing.T, r *report.Report) string {
	t.Helper()
	out, err := Serialize(r)
	require.NoError(t, err)
	return string(out)
}

func TestSerialize_MinimalReport(t *testing.T) {
	out := render(t, minimalReport())

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, out, `<IrregularReport xmlns="http://www.impa.gov.il/IrregularReport"`)
	assert.Contains(t, out, `xmlns:cns="http://www.impa.gov.il/CommonTypes"`)
	assert.Contains(t, out, `xmlns:ens="http://www.impa.gov.il/EnumTypes"`)
	assert.Contains(t, out, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.Contains(t, out, `Version="1.0"`)

	assert.Contains(t, out, "<ReportNumber>R-1</ReportNumber>")
	assert.Contains(t, out, "<cns:LastName>Levi</cns:LastName>")
	assert.Contains(t, out, "<cns:FirstName>Dana</cns:FirstName>")
	assert.Contains(t, out, "<IrregularReportEvent>")
	assert.Contains(t, out, "<EventDateTime>2024-03-01T10:00:00</EventDateTime>")

	for _, name := range []string{
		"Persons", "Corporates", "IrRegularAccounts", "IrRegularTransactions",
		"IrRegularPledges", "Attachments", "RelatedReports", "KeyWords",
		"ReportType", "ReportDate", "ContainsTransactions", "cns:Phones",
	} {
		assert.NotContains(t, out, "<"+name, "element %s should be omitted", name)
	}

	// The reporting reasons wrapper is mandatory even with no reasons.
	assert.Contains(t, out, "<ReportingReasons />")

	var doc struct {
		XMLName xml.Name
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "IrregularReport", doc.XMLName.Local)
}

func TestSerialize_ElementOrder(t *testing.T) {
	r := minimalReport()
	r.Event.ReportingReasons = []int{2, 5}
	r.Event.KeyWords = []int{7}
	r.Event.ContainsTransactions = report.Bool(false)
	out := render(t, r)

	order := []string{
		"<ReportMetadata>", "<SourceMetadata>", "<IrregularReportEvent>",
		"<EventID>", "<EventDateTime>", "<ReportingReasons>", "<BriefDescription>",
		"<FullDescription>", "<KeyWords>", "<ContainsTransactions>",
	}
	last := -1
	for _, tag := range order {
		idx := strings.Index(out, tag)
		require.NotEqual(t, -1, idx, "missing %s", tag)
		assert.Greater(t, idx, last, "%s out of order", tag)
		last = idx
	}
	assert.Contains(t, out, "<ReportingReason>2</ReportingReason>")
	assert.Contains(t, out, "<ReportingReason>5</ReportingReason>")
}

func TestSerialize_Booleans(t *testing.T) {
	tests := []struct {
		name  string
		value *bool
		want  string
	}{
		{"true", report.Bool(true), "<ContainsTransactions>1</ContainsTransactions>"},
		{"false", report.Bool(false), "<ContainsTransactions>0</ContainsTransactions>"},
		{"absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := minimalReport()
			r.Event.ContainsTransactions = tt.value
			out := render(t, r)
			if tt.want == "" {
				assert.NotContains(t, out, "ContainsTransactions")
				return
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSerialize_Escaping(t *testing.T) {
	r := minimalReport()
	r.Event.BriefDescription = `a<b>&'c"`
	r.Event.FullDescription = "already &amp; escaped"
	out := render(t, r)

	assert.Contains(t, out, "<BriefDescription>a&lt;b&gt;&amp;&apos;c&quot;</BriefDescription>")
	assert.Contains(t, out, "<FullDescription>already &amp;amp; escaped</FullDescription>")
}

func TestSerialize_Deterministic(t *testing.T) {
	r := fullReport()
	first := render(t, r)
	second := render(t, r)
	assert.Equal(t, first, second)
}

func TestSerialize_OmitsEmptyScalars(t *testing.T) {
	r := minimalReport()
	r.Metadata.Description = ""
	r.Source.ReportingBranch = ""
	tx := report.NewTransaction()
	tx.LocalCurrency.Amount = report.Float(math.NaN())
	tx.OriginalCurrency.Amount = report.Float(math.Inf(1))
	r.Event.Transactions = append(r.Event.Transactions, tx)

	out := render(t, r)
	assert.NotContains(t, out, "ReportDescription")
	assert.NotContains(t, out, "ReportingBranch")
	assert.NotContains(t, out, "LocalCurrencyAmount")
	assert.NotContains(t, out, "OriginalCurrencyAmount")
	assert.Contains(t, out, `<IrRegularTransaction xsi:type="IrRegularEtransaction">`)
}

func TestSerialize_CustomNamespacesAndIndent(t *testing.T) {
	s := New(Options{
		Indent:     "\t",
		Namespaces: Namespaces{Default: "urn:test:report"},
	})
	out, err := s.Serialize(minimalReport())
	require.NoError(t, err)

	assert.Contains(t, string(out), `xmlns="urn:test:report"`)
	assert.Contains(t, string(out), `xmlns:cns="http://www.impa.gov.il/CommonTypes"`)
	assert.Contains(t, string(out), "\n\t<ReportMetadata>")
}

func TestSerialize_MalformedVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *report.Report)
		field  string
		path   string
	}{
		{
			name: "person variant missing",
			mutate: func(r *report.Report) {
				r.Event.Entities = []report.InvolvedEntity{{Kind: report.EntityKindPerson}}
			},
			field: "entities[0].person",
			path:  "/IrregularReport/IrregularReportEvent",
		},
		{
			name: "corporate variant missing behind a valid person",
			mutate: func(r *report.Report) {
				r.Event.Entities = []report.InvolvedEntity{report.NewPerson(), {Kind: report.EntityKindCorporate}}
			},
			field: "entities[1].corporate",
			path:  "/IrregularReport/IrregularReportEvent",
		},
		{
			name: "unknown entity kind",
			mutate: func(r *report.Report) {
				r.Event.Entities = []report.InvolvedEntity{report.NewPerson(), {Kind: "trust"}}
			},
			field: "entities[1].kind",
			path:  "/IrregularReport/IrregularReportEvent",
		},
		{
			name: "other account variant missing",
			mutate: func(r *report.Report) {
				r.Event.Accounts = []report.Account{{Kind: report.AccountKindOther}}
			},
			field: "accounts[0].other",
			path:  "/IrregularReport/IrregularReportEvent/IrRegularAccounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := minimalReport()
			tt.mutate(r)

			out, err := Serialize(r)
			require.Error(t, err)
			assert.Nil(t, out)

			var modelErr *ModelError
			require.True(t, errors.As(err, &modelErr))
			assert.Equal(t, tt.field, modelErr.Field)
			assert.Equal(t, tt.path, modelErr.Path)
		})
	}
}
