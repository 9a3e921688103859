package report

// Report is the root of one irregular activity report.
type Report struct {
	Version        string          `json:"version"`
	Metadata       ReportMetadata  `json:"reportMetadata"`
	Source         SourceMetadata  `json:"sourceMetadata"`
	RelatedReports []RelatedReport `json:"relatedReports"`
	Event          Event           `json:"event"`
}

// ReportMetadata identifies the report itself.
type ReportMetadata struct {
	ReportNumber   string `json:"reportNumber"`
	ReportType     *int   `json:"reportType,omitempty"`
	ReportDate     string `json:"reportDate"`
	Description    string `json:"description"`
	ReportStatus   *int   `json:"reportStatus,omitempty"`
	Classification *int   `json:"classification,omitempty"`
}

// SourceMetadata identifies the reporting institution.
type SourceMetadata struct {
	ReportingEntityID   string          `json:"reportingEntityId"`
	ReportingEntityType *int            `json:"reportingEntityType,omitempty"`
	ReportingBranch     string          `json:"reportingBranch"`
	ReportingPerson     ReportingPerson `json:"reportingPerson"`
}

// ReportingPerson is the employee filing the report.
type ReportingPerson struct {
	LastName       string  `json:"lastName"`
	FirstName      string  `json:"firstName"`
	IdentityNumber string  `json:"identityNumber"`
	Phones         []Phone `json:"phones"`
	Emails         []Email `json:"emails"`
	Role           string  `json:"role"`
}

// RelatedReport points at a previously submitted report.
type RelatedReport struct {
	ReportNumber  string `json:"reportNumber"`
	RelationTypes []int  `json:"relationTypes"`
}

// Event is the disclosure body.
type Event struct {
	LocalID LocalID `json:"localId"`

	EventDateTime string `json:"eventDateTime"`

	ReportingReasons     []int  `json:"reportingReasons"`
	ReportingReasonOther string `json:"reportingReasonOther"`

	BriefDescription string `json:"briefDescription"`
	FullDescription  string `json:"fullDescription"`

	KeyWords     []int  `json:"keyWords"`
	KeyWordOther string `json:"keyWordOther"`

	AdditionalAuthorities    []int  `json:"additionalAuthorities"`
	AdditionalAuthorityOther string `json:"additionalAuthorityOther"`

	ContainsTransactions *bool `json:"containsTransactions,omitempty"`

	Entities     []InvolvedEntity `json:"entities"`
	Accounts     []Account        `json:"accounts"`
	Pledges      []Pledge         `json:"pledges"`
	Transactions []Transaction    `json:"transactions"`
	Attachments  []Attachment     `json:"attachments"`
}

// Relation links its owner to another record. FreeText is meaningful only
// when TypeCode is the "other" sentinel of the relation's context.
type Relation struct {
	TypeCode *int    `json:"relationTypeCode,omitempty"`
	Target   LocalID `json:"targetLocalId"`
	FreeText string  `json:"relationTypeFreeText"`
}

// IdentityDocument describes the document an entity was identified by.
type IdentityDocument struct {
	Type      *int   `json:"idType,omitempty"`
	TypeOther string `json:"idTypeDesc"`
	Number    string `json:"idNumber"`
	Country   string `json:"idCountry"`
}

// EntityBase holds the fields shared by persons and corporates.
type EntityBase struct {
	LocalID         LocalID          `json:"localId"`
	Identity        IdentityDocument `json:"identity"`
	Addresses       []Address        `json:"addresses"`
	Phones          []Phone          `json:"phones"`
	Emails          []Email          `json:"emails"`
	Comment         string           `json:"comment"`
	EventRelations  []Relation       `json:"eventRelations"`
	EntityRelations []Relation       `json:"entityRelations"`
}

// Person is a natural person involved in the event.
type Person struct {
	EntityBase

	LastName         string `json:"lastName"`
	FirstName        string `json:"firstName"`
	LatinName        string `json:"latinName"`
	BirthDate        string `json:"birthDate"`
	EntityGender     *int   `json:"entityGender,omitempty"`
	EntityGenderDesc string `json:"entityGenderDesc"`
	ResidenceStatus  *int   `json:"residenceStatus,omitempty"`
	Professions      []int  `json:"professions"`
	ProfessionOther  string `json:"professionDesc"`
}

// Corporate is a legal entity involved in the event.
type Corporate struct {
	EntityBase

	Name            string `json:"name"`
	FoundationDate  string `json:"foundationDate"`
	ResidenceStatus *int   `json:"residenceStatus,omitempty"`
	FieldOfBusiness string `json:"fieldOfBusiness"`
}

// InvolvedEntity is a tagged union over Person and Corporate. Kind selects
// which variant is populated.
type InvolvedEntity struct {
	Kind      EntityKind `json:"kind"`
	Person    *Person    `json:"person,omitempty"`
	Corporate *Corporate `json:"corporate,omitempty"`
}

// Base returns the shared fields of the active variant, or nil when the
// variant named by Kind is missing.
func (e *InvolvedEntity) Base() *EntityBase {
	switch e.Kind {
	case EntityKindPerson:
		if e.Person != nil {
			return &e.Person.EntityBase
		}
	case EntityKindCorporate:
		if e.Corporate != nil {
			return &e.Corporate.EntityBase
		}
	}
	return nil
}

// Address is a postal address.
type Address struct {
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	ZipCode     string `json:"zipCode"`
}

// IsPresent reports whether the address carries enough data to be emitted:
// a country, or a city together with a street or house number.
func (a Address) IsPresent() bool {
	if a.Country != "" {
		return true
	}
	return a.City != "" && (a.Street != "" || a.HouseNumber != "")
}

// Phone is a telephone number.
type Phone struct {
	Type            *int   `json:"phoneType,omitempty"`
	CountryDialCode string `json:"countryDialCode"`
	Number          string `json:"number"`
}

// IsPresent reports whether the phone has a number.
func (p Phone) IsPresent() bool {
	return p.Number != ""
}

// Email is an email address.
type Email struct {
	Address string `json:"address"`
}

// IsPresent reports whether the email has an address.
func (e Email) IsPresent() bool {
	return e.Address != ""
}

// AccountBase holds the fields shared by both account variants.
type AccountBase struct {
	LocalID         LocalID    `json:"localId"`
	InstituteType   *int       `json:"instituteType,omitempty"`
	AccountNumber   string     `json:"accountNumber"`
	AccountName     string     `json:"accountName"`
	EventRelations  []Relation `json:"eventRelations"`
	EntityRelations []Relation `json:"entityRelations"`
}

// BankAccount is an account held at a local bank or the postal bank.
type BankAccount struct {
	AccountBase

	InstituteNumber string `json:"instituteNumber"`
	BranchNumber    string `json:"branchNumber"`
}

// OtherAccount is an account at a foreign institute or a digital wallet.
type OtherAccount struct {
	AccountBase

	InstituteIdentifier string `json:"instituteIdentifier"`
	InstituteName       string `json:"instituteName"`
}

// Account is a tagged union over BankAccount and OtherAccount.
type Account struct {
	Kind  AccountKind   `json:"kind"`
	Bank  *BankAccount  `json:"bank,omitempty"`
	Other *OtherAccount `json:"other,omitempty"`
}

// Base returns the shared fields of the active variant, or nil when the
// variant named by Kind is missing.
func (a *Account) Base() *AccountBase {
	switch a.Kind {
	case AccountKindBank:
		if a.Bank != nil {
			return &a.Bank.AccountBase
		}
	case AccountKindOther:
		if a.Other != nil {
			return &a.Other.AccountBase
		}
	}
	return nil
}

// CurrencyAmount is an amount in a given currency.
type CurrencyAmount struct {
	Amount       *float64 `json:"amount,omitempty"`
	CurrencyCode string   `json:"currencyCode"`
}

// VirtualCurrencyAmount is an amount of a virtual currency.
type VirtualCurrencyAmount struct {
	Amount       *float64 `json:"amount,omitempty"`
	CurrencyCode string   `json:"currencyCode"`
	CurrencyName string   `json:"currencyName"`
}

// ChequeDetails describes a cheque.
type ChequeDetails struct {
	Number        string         `json:"chequeNumber"`
	BankNumber    string         `json:"bankNumber"`
	BranchNumber  string         `json:"branchNumber"`
	AccountNumber string         `json:"accountNumber"`
	Date          string         `json:"date"`
	Amount        CurrencyAmount `json:"amount"`
}

// RealEstateDetails describes a real-estate property.
type RealEstateDetails struct {
	Block     string  `json:"block"`
	Parcel    string  `json:"parcel"`
	SubParcel string  `json:"subParcel"`
	Address   Address `json:"address"`
}

// CarDetails describes a vehicle.
type CarDetails struct {
	LicenseNumber string `json:"licenseNumber"`
	Manufacturer  string `json:"manufacturer"`
	Model         string `json:"model"`
	Year          *int   `json:"year,omitempty"`
}

// CreditCardDetails describes a payment card.
type CreditCardDetails struct {
	CardNumber string `json:"cardNumber"`
	Issuer     string `json:"issuer"`
	Expiration string `json:"expiration"`
	HolderName string `json:"holderName"`
}

// Pledge is a collateral record. PledgeTypeID selects which of the detail
// records is meaningful; the others may hold stale values and are ignored.
type Pledge struct {
	LocalID LocalID `json:"localId"`

	PledgeTypeID   *int           `json:"pledgeTypeID,omitempty"`
	PledgeTypeDesc string         `json:"pledgeTypeDesc"`
	Description    string         `json:"description"`
	Value          CurrencyAmount `json:"value"`

	ChequeDetails     ChequeDetails     `json:"chequeDetails"`
	RealEstateDetails RealEstateDetails `json:"realEstateDetails"`
	CarDetails        CarDetails        `json:"carDetails"`

	Account         LocalID    `json:"accountLocalId"`
	EntityRelations []Relation `json:"entityRelations"`
	Attachments     []LocalID  `json:"attachmentLocalIds"`
}

// FinancialAsset is the instrument a transaction moved. AssetTypeID selects
// which of the detail records is meaningful.
type FinancialAsset struct {
	LocalID LocalID `json:"localId"`

	AssetTypeID   *int   `json:"assetTypeID,omitempty"`
	AssetTypeDesc string `json:"assetTypeDesc"`

	ChequeDetails     ChequeDetails     `json:"chequeDetails"`
	CreditCardDetails CreditCardDetails `json:"creditCardDetails"`

	Account         LocalID    `json:"accountLocalId"`
	EntityRelations []Relation `json:"entityRelations"`
	Attachments     []LocalID  `json:"attachmentLocalIds"`
}

// Transaction is a single financial movement.
type Transaction struct {
	LocalID LocalID `json:"localId"`

	Date                string `json:"date"`
	TransactionTypeID   *int   `json:"transactionTypeID,omitempty"`
	TransactionTypeDesc string `json:"transactionTypeDesc"`

	LocalCurrency    CurrencyAmount         `json:"localCurrency"`
	OriginalCurrency CurrencyAmount         `json:"originalCurrency"`
	VirtualCurrency  *VirtualCurrencyAmount `json:"virtualCurrency,omitempty"`

	IsCommitted    *bool  `json:"isCommitted,omitempty"`
	ReportedBefore *bool  `json:"reportedBefore,omitempty"`
	Comment        string `json:"comment"`

	FinancialAsset *FinancialAsset `json:"financialAsset,omitempty"`

	EntityRelations []Relation `json:"entityRelations"`
	Pledges         []LocalID  `json:"pledgeLocalIds"`
}

// Attachment is file metadata; the file content is never part of the model.
type Attachment struct {
	LocalID LocalID `json:"localId"`

	FileName         string `json:"fileName"`
	DocumentType     *int   `json:"documentType,omitempty"`
	DocumentTypeDesc string `json:"documentTypeDesc"`
	PageCount        *int   `json:"pageCount,omitempty"`
	Comment          string `json:"comment"`
}
