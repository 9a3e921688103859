package serializer

import (
	"github.com/aegisshield/irregular-report/internal/report"
)

// fullReport builds a report touching every collection, with relations
// between its records.
func fullReport() *report.Report {
	r := minimalReport()
	r.Metadata.ReportType = report.Int(1)
	r.Metadata.ReportDate = "2024-03-05"
	r.Source.ReportingEntityID = "512345678"
	r.Source.ReportingPerson.Phones = []report.Phone{{Number: "03-5551234"}, {CountryDialCode: "972"}}
	r.Source.ReportingPerson.Emails = []report.Email{{Address: "compliance@bank.example"}}
	r.RelatedReports = []report.RelatedReport{{ReportNumber: "R-0", RelationTypes: []int{1, 3}}}

	ev := &r.Event
	ev.ReportingReasons = []int{1, report.OtherCode}
	ev.ReportingReasonOther = "Unusual source of funds"
	ev.ContainsTransactions = report.Bool(true)

	person := report.NewPerson()
	p := person.Person
	p.LocalID = "person-1"
	p.FirstName = "Avi"
	p.LastName = "Cohen"
	p.EntityGender = report.Int(1)
	p.EntityGenderDesc = "stale"
	p.Identity = report.IdentityDocument{Type: report.Int(1), Number: "012345678", Country: "IL"}
	p.Addresses = []report.Address{{Country: "IL", City: "Haifa"}, {City: "Nowhere"}}
	p.EventRelations = []report.Relation{{TypeCode: report.Int(2)}}

	corp := report.NewCorporate()
	c := corp.Corporate
	c.LocalID = "corp-1"
	c.Name = "Acme Ltd"
	c.EntityRelations = []report.Relation{
		{TypeCode: report.Int(4), Target: "person-1"},
		{TypeCode: report.Int(4), Target: "missing"},
	}
	ev.Entities = []report.InvolvedEntity{corp, person}

	account := report.NewBankAccount()
	account.Bank.LocalID = "acct-1"
	account.Bank.AccountNumber = "123456"
	account.Bank.InstituteNumber = "12"
	account.Bank.EntityRelations = []report.Relation{{TypeCode: report.Int(1), Target: "corp-1"}}
	ev.Accounts = []report.Account{account}

	att := report.NewAttachment()
	att.LocalID = "att-1"
	att.FileName = "statement.pdf"
	att.PageCount = report.Int(3)
	ev.Attachments = []report.Attachment{att}

	pledge := report.NewPledge()
	pledge.LocalID = "pledge-1"
	pledge.PledgeTypeID = report.Int(report.PledgeTypeCheque)
	pledge.ChequeDetails = report.ChequeDetails{
		Number: "1001",
		Amount: report.CurrencyAmount{Amount: report.Float(2500), CurrencyCode: "ILS"},
	}
	pledge.CarDetails = report.CarDetails{LicenseNumber: "stale"}
	pledge.Account = "acct-1"
	pledge.Attachments = []report.LocalID{"att-1", "person-1"}
	ev.Pledges = []report.Pledge{pledge}

	tx := report.NewTransaction()
	tx.LocalID = "tx-1"
	tx.Date = "2024-02-28"
	tx.LocalCurrency = report.CurrencyAmount{Amount: report.Float(9900), CurrencyCode: "ILS"}
	tx.OriginalCurrency = report.CurrencyAmount{Amount: report.Float(2750.5), CurrencyCode: "USD"}
	tx.IsCommitted = report.Bool(true)
	tx.ReportedBefore = report.Bool(false)
	tx.Pledges = []report.LocalID{"pledge-1"}
	tx.EntityRelations = []report.Relation{{TypeCode: report.Int(report.OtherCode), Target: "person-1", FreeText: "Courier"}}
	fa := report.NewFinancialAsset()
	fa.AssetTypeID = report.Int(report.AssetTypeCreditCard)
	fa.CreditCardDetails = report.CreditCardDetails{CardNumber: "4580-XXXX", Issuer: "Isracard"}
	fa.ChequeDetails = report.ChequeDetails{Number: "stale"}
	fa.Account = "acct-1"
	tx.FinancialAsset = fa
	ev.Transactions = []report.Transaction{tx}

	return r
}
