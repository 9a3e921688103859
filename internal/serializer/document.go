package serializer

import (
	"github.com/aegisshield/irregular-report/internal/report"
)

func (b *builder) reportMetadata(m *report.ReportMetadata) {
	b.w.block("ReportMetadata", func() {
		b.w.scalar("ReportNumber", m.ReportNumber)
		b.w.scalar("ReportType", m.ReportType)
		b.w.scalar("ReportDate", m.ReportDate)
		b.w.scalar("ReportDescription", m.Description)
		b.w.scalar("ReportStatus", m.ReportStatus)
		b.w.scalar("ReportClassification", m.Classification)
	})
}

func (b *builder) sourceMetadata(s *report.SourceMetadata) {
	b.w.block("SourceMetadata", func() {
		b.w.scalar("ReportingEntityID", s.ReportingEntityID)
		b.w.scalar("ReportingEntityType", s.ReportingEntityType)
		b.w.scalar("ReportingBranch", s.ReportingBranch)

		p := &s.ReportingPerson
		b.w.block("ReportingPerson", func() {
			b.w.scalar("LastName", p.LastName)
			b.w.scalar("FirstName", p.FirstName)
			b.w.scalar("IdentityNumber", p.IdentityNumber)
			b.phones(p.Phones)
			b.emails(p.Emails)
			b.w.scalar("ReportingPersonRole", p.Role)
		})
	})
}

func (b *builder) relatedReports(related []report.RelatedReport) {
	b.w.collection("RelatedReports", func() {
		for i := range related {
			rr := &related[i]
			b.w.block("RelatedReport", func() {
				b.w.scalar("RelatedReportNumber", rr.ReportNumber)
				b.codes("RelatedReportRelations", "RelatedReportRelation", rr.RelationTypes)
			})
		}
	})
}

func (b *builder) event(ev *report.Event) {
	b.w.block("IrregularReportEvent", func() {
		b.w.scalar("EventID", ev.LocalID)
		b.w.scalar("EventDateTime", ev.EventDateTime)

		b.codes("ReportingReasons", "ReportingReason", ev.ReportingReasons)
		b.otherIfSelected("ReportingReasonOther", ev.ReportingReasons, ev.ReportingReasonOther)

		b.w.scalar("BriefDescription", ev.BriefDescription)
		b.w.scalar("FullDescription", ev.FullDescription)

		b.codes("KeyWords", "KeyWord", ev.KeyWords)
		b.otherIfSelected("KeyWordOther", ev.KeyWords, ev.KeyWordOther)

		b.codes("AdditionalAuthorities", "AdditionalAuthority", ev.AdditionalAuthorities)
		b.otherIfSelected("AdditionalAuthorityOther", ev.AdditionalAuthorities, ev.AdditionalAuthorityOther)

		b.w.scalar("ContainsTransactions", ev.ContainsTransactions)

		b.checkEntities(ev.Entities)
		b.persons(ev.Entities)
		b.corporates(ev.Entities)
		b.accounts(ev.Accounts)
		b.pledges(ev.Pledges)
		b.transactions(ev.Transactions)
		b.attachments(ev.Attachments)
	})
}

func (b *builder) attachments(atts []report.Attachment) {
	b.w.collection("Attachments", func() {
		for i := range atts {
			a := &atts[i]
			b.w.block("Attachment", func() {
				b.w.scalar("AttachmentID", a.LocalID)
				b.w.scalar("FileName", a.FileName)
				b.w.scalar("DocumentType", a.DocumentType)
				b.otherIfCode("DocumentTypeDesc", a.DocumentType, a.DocumentTypeDesc)
				b.w.scalar("PageCount", a.PageCount)
				b.w.scalar("AttachmentComment", a.Comment)
			})
		}
	})
}
