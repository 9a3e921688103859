package serializer

import (
	"github.com/samber/lo"

	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

// codes emits a wrapper holding one element per code.
func (b *builder) codes(wrapper, item string, codes []int) {
	b.w.collection(wrapper, func() {
		for _, code := range codes {
			b.w.scalar(item, code)
		}
	})
}

// otherIfSelected emits text when the multi-select codes contain the
// "other" sentinel.
func (b *builder) otherIfSelected(name string, codes []int, text string) {
	if lo.Contains(codes, report.OtherCode) {
		b.w.scalar(name, text)
	}
}

// otherIfCode emits text when the governing code is the "other" sentinel.
func (b *builder) otherIfCode(name string, code *int, text string) {
	if code != nil && *code == report.OtherCode {
		b.w.scalar(name, text)
	}
}

func (b *builder) addressFields(a *report.Address) {
	b.w.scalar("Country", a.Country)
	b.w.scalar("City", a.City)
	b.w.scalar("Street", a.Street)
	b.w.scalar("HouseNumber", a.HouseNumber)
	b.w.scalar("ZipCode", a.ZipCode)
}

func (b *builder) addresses(addrs []report.Address) {
	b.w.collection("Addresses", func() {
		for i := range addrs {
			if !addrs[i].IsPresent() {
				continue
			}
			b.w.block("Address", func() { b.addressFields(&addrs[i]) })
		}
	})
}

func (b *builder) phones(phones []report.Phone) {
	b.w.collection("Phones", func() {
		for i := range phones {
			p := &phones[i]
			if !p.IsPresent() {
				continue
			}
			b.w.block("Phone", func() {
				b.w.scalar("PhoneType", p.Type)
				b.w.scalar("CountryDialCode", p.CountryDialCode)
				b.w.scalar("PhoneNumber", p.Number)
			})
		}
	})
}

func (b *builder) emails(emails []report.Email) {
	b.w.collection("Emails", func() {
		for i := range emails {
			if !emails[i].IsPresent() {
				continue
			}
			b.w.block("Email", func() {
				b.w.scalar("EmailAddress", emails[i].Address)
			})
		}
	})
}

func (b *builder) currencyAmount(name string, c *report.CurrencyAmount) {
	b.w.block(name, func() {
		b.w.scalar("Amount", c.Amount)
		b.w.scalar("CurrencyCode", c.CurrencyCode)
	})
}

func (b *builder) virtualCurrencyAmount(v *report.VirtualCurrencyAmount) {
	if v == nil {
		return
	}
	b.w.block("VirtualCurrencyAmount", func() {
		b.w.scalar("VirtualAmount", v.Amount)
		b.w.scalar("VirtualCurrencyCode", v.CurrencyCode)
		b.w.scalar("VirtualCurrencyName", v.CurrencyName)
	})
}

func (b *builder) chequeDetails(c *report.ChequeDetails) {
	b.w.block("ChequeDetails", func() {
		b.w.scalar("ChequeNumber", c.Number)
		b.w.scalar("ChequeBankNumber", c.BankNumber)
		b.w.scalar("ChequeBranchNumber", c.BranchNumber)
		b.w.scalar("ChequeAccountNumber", c.AccountNumber)
		b.w.scalar("ChequeDate", c.Date)
		b.currencyAmount("ChequeAmount", &c.Amount)
	})
}

func (b *builder) realEstateDetails(r *report.RealEstateDetails) {
	b.w.block("RealEstateDetails", func() {
		b.w.scalar("RealEstateBlock", r.Block)
		b.w.scalar("RealEstateParcel", r.Parcel)
		b.w.scalar("RealEstateSubParcel", r.SubParcel)
		if r.Address.IsPresent() {
			b.w.block("RealEstateAddress", func() { b.addressFields(&r.Address) })
		}
	})
}

func (b *builder) carDetails(c *report.CarDetails) {
	b.w.block("CarDetails", func() {
		b.w.scalar("CarLicenseNumber", c.LicenseNumber)
		b.w.scalar("CarManufacturer", c.Manufacturer)
		b.w.scalar("CarModel", c.Model)
		b.w.scalar("CarYear", c.Year)
	})
}

func (b *builder) creditCardDetails(c *report.CreditCardDetails) {
	b.w.block("CreditCardDetails", func() {
		b.w.scalar("CardNumber", c.CardNumber)
		b.w.scalar("CardIssuer", c.Issuer)
		b.w.scalar("CardExpiration", c.Expiration)
		b.w.scalar("CardHolderName", c.HolderName)
	})
}

// relations emits resolved relations of one context. Relations the
// resolver rejects are dropped.
func (b *builder) relations(wrapper, item, refName string, ctx relation.Context, rels []report.Relation) {
	resolved := b.res.ResolveAll(ctx, rels)
	b.w.collection(wrapper, func() {
		for _, rel := range resolved {
			b.w.block(item, func() {
				b.w.scalar("RelationTypeID", rel.TypeCode)
				b.w.scalar("RelationTypeDesc", rel.FreeText)
				b.w.scalar(refName, rel.Ref)
			})
		}
	})
}

func (b *builder) eventRelations(ctx relation.Context, rels []report.Relation) {
	b.relations("EventRelations", "EventRelation", "EventRef", ctx, rels)
}

func (b *builder) entityRelations(ctx relation.Context, rels []report.Relation) {
	b.relations("EntityRelations", "EntityRelation", "EntityRef", ctx, rels)
}

// accountRef emits the linked account when it resolves.
func (b *builder) accountRef(id report.LocalID) {
	if ref, ok := b.res.Ref(relation.KindAccount, id); ok {
		b.w.scalar("AccountRef", ref)
	}
}

// refs emits a wrapper of reference tokens, dropping unresolvable ones.
func (b *builder) refs(wrapper, item string, kind relation.Kind, ids []report.LocalID) {
	tokens := b.res.Refs(kind, ids)
	b.w.collection(wrapper, func() {
		for _, token := range tokens {
			b.w.scalar(item, token)
		}
	})
}
