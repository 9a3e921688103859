package serializer

import (
	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

func (b *builder) pledges(pledges []report.Pledge) {
	b.w.collection("IrRegularPledges", func() {
		for i := range pledges {
			b.pledge(&pledges[i])
		}
	})
}

func (b *builder) pledge(p *report.Pledge) {
	b.w.block("IrRegularPledge", func() {
		b.w.scalar("PledgeID", p.LocalID)
		b.w.scalar("PledgeTypeID", p.PledgeTypeID)
		b.otherIfCode("PledgeTypeDesc", p.PledgeTypeID, p.PledgeTypeDesc)
		b.w.scalar("PledgeDescription", p.Description)
		b.currencyAmount("PledgeValue", &p.Value)

		// Only the detail record selected by the type is written; the
		// others may still hold values from an earlier type choice.
		if p.PledgeTypeID != nil {
			switch *p.PledgeTypeID {
			case report.PledgeTypeCheque:
				b.chequeDetails(&p.ChequeDetails)
			case report.PledgeTypeRealEstate:
				b.realEstateDetails(&p.RealEstateDetails)
			case report.PledgeTypeVehicle:
				b.carDetails(&p.CarDetails)
			}
		}

		b.accountRef(p.Account)
		b.entityRelations(relation.PledgeToEntity, p.EntityRelations)
		b.refs("AttachmentRefs", "AttachmentRef", relation.KindAttachment, p.Attachments)
	})
}
