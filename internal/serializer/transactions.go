package serializer

import (
	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

func (b *builder) transactions(txs []report.Transaction) {
	b.w.collection("IrRegularTransactions", func() {
		for i := range txs {
			b.transaction(&txs[i])
		}
	})
}

func (b *builder) transaction(tx *report.Transaction) {
	b.w.block("IrRegularTransaction", func() {
		b.w.scalar("TransactionID", tx.LocalID)
		b.w.scalar("TransactionDate", tx.Date)
		b.w.scalar("TransactionTypeID", tx.TransactionTypeID)
		b.otherIfCode("TransactionTypeDesc", tx.TransactionTypeID, tx.TransactionTypeDesc)
		b.currencyAmount("LocalCurrencyAmount", &tx.LocalCurrency)
		b.currencyAmount("OriginalCurrencyAmount", &tx.OriginalCurrency)
		b.virtualCurrencyAmount(tx.VirtualCurrency)
		b.w.scalar("IsCommitted", tx.IsCommitted)
		b.w.scalar("ReportedBefore", tx.ReportedBefore)
		b.w.scalar("TransactionComment", tx.Comment)
		b.financialAsset(tx.FinancialAsset)
		b.entityRelations(relation.TransactionToEntity, tx.EntityRelations)
		b.refs("PledgeRefs", "PledgeRef", relation.KindPledge, tx.Pledges)
	}, attr{prefixXSI + ":type", transactionXSIType})
}

func (b *builder) financialAsset(fa *report.FinancialAsset) {
	if fa == nil {
		return
	}
	b.w.block("FinancialAsset", func() {
		b.w.scalar("AssetTypeID", fa.AssetTypeID)
		b.otherIfCode("AssetTypeDesc", fa.AssetTypeID, fa.AssetTypeDesc)

		if fa.AssetTypeID != nil {
			switch *fa.AssetTypeID {
			case report.AssetTypeCheque:
				b.chequeDetails(&fa.ChequeDetails)
			case report.AssetTypeCreditCard:
				b.creditCardDetails(&fa.CreditCardDetails)
			}
		}

		b.accountRef(fa.Account)
		b.entityRelations(relation.AssetToEntity, fa.EntityRelations)
		b.refs("AttachmentRefs", "AttachmentRef", relation.KindAttachment, fa.Attachments)
	})
}
