package report

// DefaultVersion is the schema version stamped on new reports.
const DefaultVersion = "1.0"

// NewReport creates an empty report with a fresh event.
func NewReport() *Report {
	return &Report{
		Version: DefaultVersion,
		Source: SourceMetadata{
			ReportingPerson: ReportingPerson{
				Phones: []Phone{},
				Emails: []Email{},
			},
		},
		RelatedReports: []RelatedReport{},
		Event:          NewEvent(),
	}
}

// NewEvent creates an empty event.
func NewEvent() Event {
	return Event{
		LocalID:               NewLocalID(),
		ReportingReasons:      []int{},
		KeyWords:              []int{},
		AdditionalAuthorities: []int{},
		Entities:              []InvolvedEntity{},
		Accounts:              []Account{},
		Pledges:               []Pledge{},
		Transactions:          []Transaction{},
		Attachments:           []Attachment{},
	}
}

func newEntityBase() EntityBase {
	return EntityBase{
		LocalID:         NewLocalID(),
		Addresses:       []Address{},
		Phones:          []Phone{},
		Emails:          []Email{},
		EventRelations:  []Relation{},
		EntityRelations: []Relation{},
	}
}

// NewPerson creates an involved entity holding an empty person.
func NewPerson() InvolvedEntity {
	return InvolvedEntity{
		Kind: EntityKindPerson,
		Person: &Person{
			EntityBase:  newEntityBase(),
			Professions: []int{},
		},
	}
}

// NewCorporate creates an involved entity holding an empty corporate.
func NewCorporate() InvolvedEntity {
	return InvolvedEntity{
		Kind:      EntityKindCorporate,
		Corporate: &Corporate{EntityBase: newEntityBase()},
	}
}

func newAccountBase(instituteType int) AccountBase {
	return AccountBase{
		LocalID:         NewLocalID(),
		InstituteType:   Int(instituteType),
		EventRelations:  []Relation{},
		EntityRelations: []Relation{},
	}
}

// NewBankAccount creates an account at a local bank.
func NewBankAccount() Account {
	return Account{
		Kind: AccountKindBank,
		Bank: &BankAccount{AccountBase: newAccountBase(InstituteTypeBank)},
	}
}

// NewOtherAccount creates an account at a foreign institute.
func NewOtherAccount() Account {
	return Account{
		Kind:  AccountKindOther,
		Other: &OtherAccount{AccountBase: newAccountBase(InstituteTypeForeign)},
	}
}

// NewPledge creates an empty pledge.
func NewPledge() Pledge {
	return Pledge{
		LocalID:         NewLocalID(),
		EntityRelations: []Relation{},
		Attachments:     []LocalID{},
	}
}

// NewFinancialAsset creates an empty financial asset.
func NewFinancialAsset() *FinancialAsset {
	return &FinancialAsset{
		LocalID:         NewLocalID(),
		EntityRelations: []Relation{},
		Attachments:     []LocalID{},
	}
}

// NewTransaction creates an empty transaction.
func NewTransaction() Transaction {
	return Transaction{
		LocalID:         NewLocalID(),
		EntityRelations: []Relation{},
		Pledges:         []LocalID{},
	}
}

// NewAttachment creates an empty attachment record.
func NewAttachment() Attachment {
	return Attachment{LocalID: NewLocalID()}
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
