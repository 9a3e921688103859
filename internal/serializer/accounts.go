package serializer

import (
	"fmt"

	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

func (b *builder) accounts(accounts []report.Account) {
	b.w.collection("IrRegularAccounts", func() {
		for i := range accounts {
			a := &accounts[i]
			switch a.Kind {
			case report.AccountKindBank:
				if a.Bank == nil {
					b.w.modelError(fmt.Sprintf("accounts[%d].bank", i), "bank account variant is missing")
					return
				}
				b.bankAccount(a.Bank)
			case report.AccountKindOther:
				if a.Other == nil {
					b.w.modelError(fmt.Sprintf("accounts[%d].other", i), "other account variant is missing")
					return
				}
				b.otherAccount(a.Other)
			default:
				b.w.modelError(fmt.Sprintf("accounts[%d].kind", i), fmt.Sprintf("unknown account kind %q", a.Kind))
				return
			}
		}
	})
}

func (b *builder) accountRelations(base *report.AccountBase) {
	b.eventRelations(relation.AccountToEvent, base.EventRelations)
	b.entityRelations(relation.AccountToEntity, base.EntityRelations)
}

func (b *builder) bankAccount(a *report.BankAccount) {
	b.w.block("IrRegularBankAccount", func() {
		b.w.scalar("AccountID", a.LocalID)
		b.w.scalar("InstituteType", a.InstituteType)
		b.w.scalar("InstituteNumber", a.InstituteNumber)
		b.w.scalar("BranchNumber", a.BranchNumber)
		b.w.scalar("AccountNumber", a.AccountNumber)
		b.w.scalar("AccountName", a.AccountName)
		b.w.scalar("AccountType", report.BankAccountType)
		b.accountRelations(&a.AccountBase)
	})
}

func (b *builder) otherAccount(a *report.OtherAccount) {
	b.w.block("IrRegularOtherAccount", func() {
		b.w.scalar("AccountID", a.LocalID)
		b.w.scalar("InstituteType", a.InstituteType)
		b.w.scalar("InstituteIdentifier", a.InstituteIdentifier)
		b.w.scalar("InstituteName", a.InstituteName)
		b.w.scalar("AccountNumber", a.AccountNumber)
		b.w.scalar("AccountName", a.AccountName)
		b.accountRelations(&a.AccountBase)
	})
}
