package field

import (
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"strconv"
	"time"
)

const expiryLength = 4

// Expiry проверяет срок действия карты в формате MMYY. Год считается относящимся
// к текущему столетию.
type Expiry struct {
	now func() time.Time
}

func NewExpiry(now func() time.Time) *Expiry {
	if now == nil {
		now = time.Now
	}

	return &Expiry{now: now}
}

func (c *Expiry) Validate(text string) entity.ValidationState {
	digits := c.normalize(text)

	switch len(digits) {
	case 0:
		return entity.Invalid(entity.ReasonEmpty)
	case 1:
		return entity.Invalid(entity.ReasonIncomplete)
	}

	month, _ := strconv.Atoi(digits[:2])
	if month < 1 || month > 12 {
		return entity.Invalid(entity.ReasonInvalidMonth)
	}

	if len(digits) < expiryLength {
		return entity.Invalid(entity.ReasonIncomplete)
	}

	now := c.now()
	yy, _ := strconv.Atoi(digits[2:4])
	year := now.Year()/100*100 + yy
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return entity.Invalid(entity.ReasonInvalid)
	}

	return entity.Valid()
}

// DisplayText добавляет разделитель после месяца, как только введена первая цифра года.
func (c *Expiry) DisplayText(text string) string {
	digits := c.normalize(text)
	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}

	return digits
}

func (c *Expiry) MaxLength(string) int {
	return expiryLength
}

// normalize оставляет в тексте только цифры. Месяц не может начинаться с цифры
// больше 1, поэтому такая первая цифра дополняется нулем слева.
func (c *Expiry) normalize(text string) string {
	digits := Digits(text)
	if digits != "" && digits[0] > '1' {
		digits = "0" + digits
	}

	return truncate(digits, expiryLength)
}
