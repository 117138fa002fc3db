package entity

type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
	BrandAmex       CardBrand = "amex"
	BrandDiscover   CardBrand = "discover"
	BrandDinersClub CardBrand = "diners"
	BrandJCB        CardBrand = "jcb"
	BrandUnionPay   CardBrand = "unionpay"
	BrandUnknown    CardBrand = "unknown"
)

// BINRange описывает диапазон номеров карт: все номера, начинающиеся с Prefix,
// имеют длину PANLength и принадлежат платежной системе Brand.
type BINRange struct {
	Prefix    string    `json:"prefix"`
	PANLength int       `json:"pan_length"`
	Brand     CardBrand `json:"brand"`
}

// Matches сообщает, покрывает ли диапазон номер digits. Номер короче префикса
// диапазона не покрывается.
func (r BINRange) Matches(digits string) bool {
	return len(digits) >= len(r.Prefix) && digits[:len(r.Prefix)] == r.Prefix
}

type LoadState string

const (
	LoadStateNotLoaded LoadState = "not_loaded"
	LoadStateLoading   LoadState = "loading"
	LoadStateLoaded    LoadState = "loaded"
	LoadStateFailed    LoadState = "failed"
)

type RangeSaveJob struct {
	Prefix string
	Ranges []BINRange
}
