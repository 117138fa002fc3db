package field

import "github.com/ivanpodgorny/cardcheck/internal/entity"

// Configuration описывает поле ввода платежной формы. Методы получают полный
// текущий текст поля и не зависят от предыдущих вызовов.
type Configuration interface {
	Validate(text string) entity.ValidationState
	DisplayText(text string) string
	MaxLength(text string) int
}

// Digits удаляет из text все символы, кроме цифр.
func Digits(text string) string {
	b := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			b = append(b, text[i])
		}
	}

	return string(b)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}

	return s
}
