package handler

import (
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"net/http"
)

type Card struct {
	cards     CardValidator
	validator Validator
}

type CardValidator interface {
	Validate(number, cvc, expiry string) entity.CardValidation
}

func NewCard(c CardValidator, v Validator) *Card {
	return &Card{
		cards:     c,
		validator: v,
	}
}

// Validate проверяет поля платежной формы и возвращает состояние каждого поля.
// Если для номера выполняется запрос диапазонов BIN, в ответе pending = true.
func (h *Card) Validate(w http.ResponseWriter, r *http.Request) {
	req := CardRequest{}
	if err := readJSONBodyAndValidate(r.Context(), &req, r, h.validator); err != nil {
		badRequest(w, "invalid request body")

		return
	}

	responseAsJSON(w, h.cards.Validate(req.Number, req.CVC, req.Expiry), http.StatusOK)
}
