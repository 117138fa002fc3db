package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// CardRequest - текущее содержимое полей платежной формы. Поля могут быть
// неполными: результат проверки описывает их состояние.
type CardRequest struct {
	Number string `json:"number" validate:"max=64,cardtext"`
	CVC    string `json:"cvc" validate:"max=16,cardtext"`
	Expiry string `json:"expiry" validate:"max=16,cardtext"`
}

type IdentityProvider interface {
	KeyID(*http.Request) (string, error)
}

type Validator interface {
	Struct(ctx context.Context, s any) error
	Var(ctx context.Context, field any, tag string) error
}

// maxBodySize ограничивает размер тела запроса.
const maxBodySize = 4 << 10

func readJSONBody(v any, r *http.Request) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func readJSONBodyAndValidate(ctx context.Context, v any, r *http.Request, validator Validator) error {
	if err := readJSONBody(v, r); err != nil {
		return err
	}

	return validator.Struct(ctx, v)
}
