package field

import (
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/brand"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/ivanpodgorny/cardcheck/internal/validator"
	"strings"
)

type BINRanges interface {
	HasBINRanges(prefix string) bool
	IsLoadingCardMetadata(prefix string) bool
	CachedRanges(prefix string) ([]entity.BINRange, bool)
	RetrieveBINRanges(prefix string, completion binrange.Completion)
}

// PAN проверяет номер карты. Для платежных систем с переменной длиной номера
// точная длина известна только после загрузки диапазонов BIN; до этого допустима
// любая длина от минимальной для системы до brand.MaxPANLength.
type PAN struct {
	detector *brand.Detector
	bins     BINRanges
}

type panLength struct {
	brand    entity.CardBrand
	min, max int
}

func NewPAN(d *brand.Detector, b BINRanges) *PAN {
	return &PAN{
		detector: d,
		bins:     b,
	}
}

// Validate не блокируется на сетевых запросах: если номер относится к системе с
// переменной длиной, запускает загрузку диапазонов BIN и возвращает результат
// по уже известным данным.
func (c *PAN) Validate(text string) entity.ValidationState {
	digits := Digits(text)
	if digits == "" {
		return entity.Invalid(entity.ReasonEmpty)
	}

	if len(digits) > brand.MaxPANLength {
		return entity.Invalid(entity.ReasonInvalidBrand)
	}

	l, ok := c.resolve(digits, true)
	if !ok {
		if len(c.detector.Possible(digits)) == 0 {
			return entity.Invalid(entity.ReasonInvalidBrand)
		}

		return entity.Invalid(entity.ReasonIncomplete)
	}

	if len(digits) < l.min {
		return entity.Invalid(entity.ReasonIncomplete)
	}

	if len(digits) > l.max {
		return entity.Invalid(entity.ReasonInvalidBrand)
	}

	if !validator.IsValidLuhn(digits) {
		return entity.Invalid(entity.ReasonInvalidLuhn)
	}

	return entity.Valid()
}

// Observe проверяет номер так же, как Validate. Если длина номера зависит от
// диапазонов BIN, которых еще нет в кеше, после завершения их загрузки проверяет
// номер повторно и передает результат в notify. Если загрузка уже завершилась,
// notify вызывается до возврата из Observe.
func (c *PAN) Observe(text string, notify func(entity.ValidationState)) entity.ValidationState {
	state := c.Validate(text)
	if digits := Digits(text); c.needsLookup(digits) {
		c.bins.RetrieveBINRanges(digits, func([]entity.BINRange, error) {
			notify(c.Validate(text))
		})
	}

	return state
}

// Pending сообщает, ожидается ли ответ сервиса метаданных для номера.
func (c *PAN) Pending(text string) bool {
	return c.bins.IsLoadingCardMetadata(Digits(text))
}

func (c *PAN) Brand(text string) entity.CardBrand {
	if l, ok := c.resolve(Digits(text), false); ok {
		return l.brand
	}

	return entity.BrandUnknown
}

func (c *PAN) MaxLength(text string) int {
	if l, ok := c.resolve(Digits(text), false); ok {
		return l.max
	}

	return brand.MaxPANLength
}

// DisplayText группирует цифры номера: 4-6-5 для 15-значных номеров, 4-6-4 для
// 14-значных, по 4 цифры для остальных.
func (c *PAN) DisplayText(text string) string {
	maxLen := c.MaxLength(text)
	digits := truncate(Digits(text), maxLen)

	groups := []int{4, 4, 4, 4, 4}
	switch maxLen {
	case 15:
		groups = []int{4, 6, 5}
	case 14:
		groups = []int{4, 6, 4}
	}

	var parts []string
	for _, g := range groups {
		if digits == "" {
			break
		}

		n := g
		if n > len(digits) {
			n = len(digits)
		}

		parts = append(parts, digits[:n])
		digits = digits[n:]
	}

	return strings.Join(parts, " ")
}

func (c *PAN) resolve(digits string, prefetch bool) (panLength, bool) {
	if ranges, ok := c.bins.CachedRanges(digits); ok {
		r := mostSpecific(ranges)

		return panLength{brand: r.Brand, min: r.PANLength, max: r.PANLength}, true
	}

	rule, ok := c.detector.Match(digits)
	if !ok {
		return panLength{}, false
	}

	l := panLength{brand: rule.Brand, min: rule.PANLength, max: rule.PANLength}
	if rule.Variable {
		l.max = brand.MaxPANLength
		if prefetch && len(digits) >= binrange.PrefixLength {
			c.bins.RetrieveBINRanges(digits, nil)
		}
	}

	return l, true
}

// needsLookup сообщает, зависит ли проверка номера от диапазонов BIN, которых
// нет в кеше.
func (c *PAN) needsLookup(digits string) bool {
	if len(digits) < binrange.PrefixLength || len(digits) > brand.MaxPANLength || c.bins.HasBINRanges(digits) {
		return false
	}

	rule, ok := c.detector.Match(digits)

	return ok && rule.Variable
}

func mostSpecific(ranges []entity.BINRange) entity.BINRange {
	best := ranges[0]
	for _, r := range ranges[1:] {
		if len(r.Prefix) > len(best.Prefix) || (len(r.Prefix) == len(best.Prefix) && r.PANLength > best.PANLength) {
			best = r
		}
	}

	return best
}
