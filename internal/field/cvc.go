package field

import "github.com/ivanpodgorny/cardcheck/internal/entity"

// CVC проверяет код безопасности карты. Требуемая длина зависит от платежной
// системы, которую возвращает brandSupplier: 4 цифры для American Express и
// неизвестной системы, 3 для остальных.
type CVC struct {
	brandSupplier func() entity.CardBrand
}

func NewCVC(brandSupplier func() entity.CardBrand) *CVC {
	return &CVC{brandSupplier: brandSupplier}
}

// Validate учитывает не больше MaxLength цифр: лишние цифры в поле не попадают.
func (c *CVC) Validate(text string) entity.ValidationState {
	required := c.MaxLength(text)
	digits := truncate(Digits(text), required)

	if digits == "" {
		return entity.Invalid(entity.ReasonEmpty)
	}

	if len(digits) < required {
		return entity.Invalid(entity.ReasonIncomplete)
	}

	return entity.Valid()
}

func (c *CVC) DisplayText(text string) string {
	return truncate(Digits(text), c.MaxLength(text))
}

func (c *CVC) MaxLength(string) int {
	b := entity.BrandUnknown
	if c.brandSupplier != nil {
		b = c.brandSupplier()
	}

	if b == entity.BrandAmex || b == entity.BrandUnknown {
		return 4
	}

	return 3
}
