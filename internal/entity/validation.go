package entity

// Reason объясняет, почему значение поля не прошло проверку. Набор допустимых
// причин свой у каждого поля: номер карты (empty, incomplete, invalid_brand,
// invalid_luhn), CVC (empty, incomplete), срок действия (empty, incomplete,
// invalid_month, invalid).
type Reason string

const (
	ReasonEmpty        Reason = "empty"
	ReasonIncomplete   Reason = "incomplete"
	ReasonInvalidBrand Reason = "invalid_brand"
	ReasonInvalidLuhn  Reason = "invalid_luhn"
	ReasonInvalidMonth Reason = "invalid_month"
	ReasonInvalid      Reason = "invalid"
)

type ValidationState struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

func Valid() ValidationState {
	return ValidationState{Valid: true}
}

func Invalid(r Reason) ValidationState {
	return ValidationState{Reason: r}
}

type FieldResult struct {
	ValidationState
	Display string `json:"display"`
}

type CardValidation struct {
	Brand   CardBrand   `json:"brand"`
	Number  FieldResult `json:"number"`
	CVC     FieldResult `json:"cvc"`
	Expiry  FieldResult `json:"expiry"`
	Pending bool        `json:"pending"`
}
