package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	logger "github.com/sirupsen/logrus"
	"net/http"
)

type BIN struct {
	ranges        BINRangeProvider
	authenticator IdentityProvider
	validator     Validator
}

type BINRangeProvider interface {
	Ranges(prefix string) ([]entity.BINRange, entity.LoadState)
	Retry(prefix string, completion binrange.Completion)
}

type BINResponse struct {
	Prefix string            `json:"prefix"`
	State  entity.LoadState  `json:"state"`
	Ranges []entity.BINRange `json:"ranges"`
}

// prefixRule - правило проверки префикса из URL: от 6 до 19 цифр.
const prefixRule = "number,min=6,max=19"

func NewBIN(p BINRangeProvider, a IdentityProvider, v Validator) *BIN {
	return &BIN{
		ranges:        p,
		authenticator: a,
		validator:     v,
	}
}

// Get возвращает состояние загрузки и загруженные диапазоны BIN для префикса.
func (h *BIN) Get(w http.ResponseWriter, r *http.Request) {
	prefix, ok := h.prefix(w, r)
	if !ok {
		return
	}

	key, _ := binrange.Key(prefix)
	ranges, state := h.ranges.Ranges(prefix)
	if ranges == nil {
		ranges = []entity.BINRange{}
	}

	responseAsJSON(w, BINResponse{
		Prefix: key,
		State:  state,
		Ranges: ranges,
	}, http.StatusOK)
}

// Retry повторяет запрос диапазонов BIN для префикса, предыдущий запрос которого
// завершился ошибкой. Возвращает ответ с кодом 202, запрос выполняется асинхронно.
func (h *BIN) Retry(w http.ResponseWriter, r *http.Request) {
	prefix, ok := h.prefix(w, r)
	if !ok {
		return
	}

	key, _ := binrange.Key(prefix)
	keyID := ""
	if h.authenticator != nil {
		keyID, _ = h.authenticator.KeyID(r)
	}
	logger.WithFields(logger.Fields{
		"prefix": key,
		"key":    keyID,
	}).Info("повторный запрос диапазонов BIN")

	h.ranges.Retry(prefix, nil)
	w.WriteHeader(http.StatusAccepted)
}

func (h *BIN) prefix(w http.ResponseWriter, r *http.Request) (string, bool) {
	prefix := chi.URLParam(r, "prefix")
	if err := h.validator.Var(r.Context(), prefix, prefixRule); err != nil {
		badRequest(w, "prefix must contain from 6 to 19 digits")

		return "", false
	}

	return prefix, true
}
