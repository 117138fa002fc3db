package field

import "github.com/ivanpodgorny/cardcheck/internal/entity"

// Form проверяет все поля платежной формы. Требуемая длина CVC определяется
// платежной системой введенного номера.
type Form struct {
	pan    *PAN
	expiry *Expiry
}

func NewForm(p *PAN, e *Expiry) *Form {
	return &Form{
		pan:    p,
		expiry: e,
	}
}

func (f *Form) Validate(number, cvc, expiry string) entity.CardValidation {
	c := NewCVC(func() entity.CardBrand {
		return f.pan.Brand(number)
	})

	return entity.CardValidation{
		Brand:   f.pan.Brand(number),
		Number:  result(f.pan, number),
		CVC:     result(c, cvc),
		Expiry:  result(f.expiry, expiry),
		Pending: f.pan.Pending(number),
	}
}

func result(c Configuration, text string) entity.FieldResult {
	return entity.FieldResult{
		ValidationState: c.Validate(text),
		Display:         c.DisplayText(text),
	}
}
