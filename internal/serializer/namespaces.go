package serializer

// Namespace prefixes declared on the root element.
const (
	prefixCommon = "cns"
	prefixEnum   = "ens"
	prefixXSI    = "xsi"
)

// Namespaces holds the URIs bound on the root element.
type Namespaces struct {
	Default string `mapstructure:"default"`
	Common  string `mapstructure:"common"`
	Enum    string `mapstructure:"enum"`
	XSI     string `mapstructure:"xsi"`
}

// DefaultNamespaces returns the URIs of the published schema.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		Default: "http://www.impa.gov.il/IrregularReport",
		Common:  "http://www.impa.gov.il/CommonTypes",
		Enum:    "http://www.impa.gov.il/EnumTypes",
		XSI:     "http://www.w3.org/2001/XMLSchema-instance",
	}
}

// transactionXSIType is the type override carried by every transaction.
const transactionXSIType = "IrRegularEtransaction"

// elementPrefixes maps every element name to the prefix of the schema
// module that defines it. An empty prefix is the report's default
// namespace. Enumerated types (ens) only type values, never elements.
var elementPrefixes = map[string]string{
	// report document
	"IrregularReport":          "",
	"ReportMetadata":           "",
	"ReportNumber":             "",
	"ReportType":               "",
	"ReportDate":               "",
	"ReportDescription":        "",
	"ReportStatus":             "",
	"ReportClassification":     "",
	"SourceMetadata":           "",
	"ReportingEntityID":        "",
	"ReportingEntityType":      "",
	"ReportingBranch":          "",
	"ReportingPerson":          "",
	"ReportingPersonRole":      "",
	"RelatedReports":           "",
	"RelatedReport":            "",
	"RelatedReportNumber":      "",
	"RelatedReportRelations":   "",
	"RelatedReportRelation":    "",
	"IrregularReportEvent":     "",
	"EventID":                  "",
	"EventDateTime":            "",
	"ReportingReasons":         "",
	"ReportingReason":          "",
	"ReportingReasonOther":     "",
	"BriefDescription":         "",
	"FullDescription":          "",
	"KeyWords":                 "",
	"KeyWord":                  "",
	"KeyWordOther":             "",
	"AdditionalAuthorities":    "",
	"AdditionalAuthority":      "",
	"AdditionalAuthorityOther": "",
	"ContainsTransactions":     "",
	"Persons":                  "",
	"Corporates":               "",
	"Attachments":              "",

	// accounts
	"IrRegularAccounts":     "",
	"IrRegularBankAccount":  "",
	"IrRegularOtherAccount": "",
	"AccountID":             "",
	"InstituteType":         "",
	"InstituteNumber":       "",
	"BranchNumber":          "",
	"InstituteIdentifier":   "",
	"InstituteName":         "",
	"AccountNumber":         "",
	"AccountName":           "",
	"AccountType":           "",
	"AccountRef":            "",

	// pledges
	"IrRegularPledges":  "",
	"IrRegularPledge":   "",
	"PledgeID":          "",
	"PledgeTypeID":      "",
	"PledgeTypeDesc":    "",
	"PledgeDescription": "",
	"AttachmentRefs":    "",
	"AttachmentRef":     "",

	// transactions
	"IrRegularTransactions": "",
	"IrRegularTransaction":  "",
	"TransactionID":         "",
	"TransactionDate":       "",
	"TransactionTypeID":     "",
	"TransactionTypeDesc":   "",
	"IsCommitted":           "",
	"ReportedBefore":        "",
	"TransactionComment":    "",
	"FinancialAsset":        "",
	"AssetTypeID":           "",
	"AssetTypeDesc":         "",
	"PledgeRefs":            "",
	"PledgeRef":             "",

	// parties
	"Person":                 prefixCommon,
	"Corporate":              prefixCommon,
	"EntityID":               prefixCommon,
	"IdentificationDocument": prefixCommon,
	"IDType":                 prefixCommon,
	"IDTypeDesc":             prefixCommon,
	"IDNumber":               prefixCommon,
	"IDCountry":              prefixCommon,
	"LastName":               prefixCommon,
	"FirstName":              prefixCommon,
	"LatinName":              prefixCommon,
	"IdentityNumber":         prefixCommon,
	"BirthDate":              prefixCommon,
	"Gender":                 prefixCommon,
	"GenderDesc":             prefixCommon,
	"ResidenceStatus":        prefixCommon,
	"Professions":            prefixCommon,
	"Profession":             prefixCommon,
	"ProfessionDesc":         prefixCommon,
	"CorporateName":          prefixCommon,
	"FoundationDate":         prefixCommon,
	"FieldOfBusiness":        prefixCommon,
	"EntityComment":          prefixCommon,

	// contact details
	"Addresses":       prefixCommon,
	"Address":         prefixCommon,
	"Country":         prefixCommon,
	"City":            prefixCommon,
	"Street":          prefixCommon,
	"HouseNumber":     prefixCommon,
	"ZipCode":         prefixCommon,
	"Phones":          prefixCommon,
	"Phone":           prefixCommon,
	"PhoneType":       prefixCommon,
	"CountryDialCode": prefixCommon,
	"PhoneNumber":     prefixCommon,
	"Emails":          prefixCommon,
	"Email":           prefixCommon,
	"EmailAddress":    prefixCommon,

	// relations
	"EventRelations":   prefixCommon,
	"EventRelation":    prefixCommon,
	"EntityRelations":  prefixCommon,
	"EntityRelation":   prefixCommon,
	"RelationTypeID":   prefixCommon,
	"RelationTypeDesc": prefixCommon,
	"EventRef":         prefixCommon,
	"EntityRef":        prefixCommon,

	// currency
	"PledgeValue":            prefixCommon,
	"LocalCurrencyAmount":    prefixCommon,
	"OriginalCurrencyAmount": prefixCommon,
	"Amount":                 prefixCommon,
	"CurrencyCode":           prefixCommon,
	"VirtualCurrencyAmount":  prefixCommon,
	"VirtualAmount":          prefixCommon,
	"VirtualCurrencyCode":    prefixCommon,
	"VirtualCurrencyName":    prefixCommon,

	// pledge and asset details
	"ChequeDetails":       prefixCommon,
	"ChequeNumber":        prefixCommon,
	"ChequeBankNumber":    prefixCommon,
	"ChequeBranchNumber":  prefixCommon,
	"ChequeAccountNumber": prefixCommon,
	"ChequeDate":          prefixCommon,
	"ChequeAmount":        prefixCommon,
	"RealEstateDetails":   prefixCommon,
	"RealEstateBlock":     prefixCommon,
	"RealEstateParcel":    prefixCommon,
	"RealEstateSubParcel": prefixCommon,
	"RealEstateAddress":   prefixCommon,
	"CarDetails":          prefixCommon,
	"CarLicenseNumber":    prefixCommon,
	"CarManufacturer":     prefixCommon,
	"CarModel":            prefixCommon,
	"CarYear":             prefixCommon,
	"CreditCardDetails":   prefixCommon,
	"CardNumber":          prefixCommon,
	"CardIssuer":          prefixCommon,
	"CardExpiration":      prefixCommon,
	"CardHolderName":      prefixCommon,

	// attachments
	"Attachment":        prefixCommon,
	"AttachmentID":      prefixCommon,
	"FileName":          prefixCommon,
	"DocumentType":      prefixCommon,
	"DocumentTypeDesc":  prefixCommon,
	"PageCount":         prefixCommon,
	"AttachmentComment": prefixCommon,
}

// wrapperRequired lists collection wrappers the schema declares mandatory
// even when they hold no children. Every other wrapper is omitted when empty.
var wrapperRequired = map[string]bool{
	"ReportingReasons": true,
}
