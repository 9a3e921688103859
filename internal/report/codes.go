package report

// OtherCode is the sentinel value that makes an adjacent free-text field
// meaningful. Every governing code in the schema uses the same value.
const OtherCode = 99

// Pledge type codes
const (
	PledgeTypeCheque     = 1
	PledgeTypeRealEstate = 2
	PledgeTypeVehicle    = 3
	PledgeTypeOther      = OtherCode
)

// Financial asset type codes
const (
	AssetTypeCheque     = 1
	AssetTypeCreditCard = 2
)

// Institute type codes. Bank accounts are limited to the bank and post
// codes, other accounts to foreign institutes and digital wallets.
const (
	InstituteTypeBank          = 1
	InstituteTypePost          = 2
	InstituteTypeForeign       = 3
	InstituteTypeDigitalWallet = 4
)

// BankAccountType is the fixed account type emitted for every bank account.
const BankAccountType = 1

// EntityKind tags the InvolvedEntity variant.
type EntityKind string

const (
	EntityKindPerson    EntityKind = "person"
	EntityKindCorporate EntityKind = "corporate"
)

// AccountKind tags the Account variant.
type AccountKind string

const (
	AccountKindBank  AccountKind = "bank"
	AccountKindOther AccountKind = "other"
)
