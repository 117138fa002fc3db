package field

import (
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCVC_Validate(t *testing.T) {
	tests := []struct {
		text  string
		brand entity.CardBrand
		want  entity.ValidationState
	}{
		{text: "", brand: entity.BrandVisa, want: entity.Invalid(entity.ReasonEmpty)},
		{text: "1", brand: entity.BrandVisa, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "12", brand: entity.BrandVisa, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "123", brand: entity.BrandVisa, want: entity.Valid()},
		{text: "1234", brand: entity.BrandVisa, want: entity.Valid()},

		{text: "", brand: entity.BrandUnknown, want: entity.Invalid(entity.ReasonEmpty)},
		{text: "12", brand: entity.BrandUnknown, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "123", brand: entity.BrandUnknown, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "1234", brand: entity.BrandUnknown, want: entity.Valid()},

		{text: "", brand: entity.BrandAmex, want: entity.Invalid(entity.ReasonEmpty)},
		{text: "1", brand: entity.BrandAmex, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "123", brand: entity.BrandAmex, want: entity.Invalid(entity.ReasonIncomplete)},
		{text: "1234", brand: entity.BrandAmex, want: entity.Valid()},

		{text: "12a", brand: entity.BrandMastercard, want: entity.Invalid(entity.ReasonIncomplete)},
	}
	for _, tt := range tests {
		t.Run(string(tt.brand)+"/"+tt.text, func(t *testing.T) {
			brand := tt.brand
			config := NewCVC(func() entity.CardBrand { return brand })
			assert.Equal(t, tt.want, config.Validate(tt.text))
		})
	}
}

func TestCVC_DisplayText(t *testing.T) {
	visa := NewCVC(func() entity.CardBrand { return entity.BrandVisa })
	amex := NewCVC(func() entity.CardBrand { return entity.BrandAmex })

	assert.Equal(t, "123", visa.DisplayText("1234"), "лишние цифры отбрасываются")
	assert.Equal(t, "1234", amex.DisplayText("1234"))
	assert.Equal(t, 3, visa.MaxLength(""))
	assert.Equal(t, 4, NewCVC(nil).MaxLength(""), "без источника системы длина как для неизвестной")
}
