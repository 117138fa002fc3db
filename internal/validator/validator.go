package validator

import (
	"context"
	v10validator "github.com/go-playground/validator/v10"
	"reflect"
)

type Validator struct {
	engine Engine
}

type Engine interface {
	StructCtx(ctx context.Context, s any) error
	VarCtx(ctx context.Context, field any, tag string) error
}

func New(e Engine) *Validator {
	return &Validator{engine: e}
}

// NewEngine создает движок go-playground/validator с зарегистрированными
// правилами luhn и cardtext.
func NewEngine() (*v10validator.Validate, error) {
	e := v10validator.New()
	if err := e.RegisterValidation("luhn", Luhn); err != nil {
		return nil, err
	}

	if err := e.RegisterValidation("cardtext", CardText); err != nil {
		return nil, err
	}

	return e, nil
}

func (v *Validator) Struct(ctx context.Context, s any) error {
	return v.engine.StructCtx(ctx, s)
}

func (v *Validator) Var(ctx context.Context, field any, tag string) error {
	return v.engine.VarCtx(ctx, field, tag)
}

// IsValidLuhn проверяет контрольную цифру номера по алгоритму Луна: каждая вторая
// цифра справа удваивается, сумма должна делиться на 10. Строка, содержащая
// что-либо кроме цифр, не проходит проверку.
func IsValidLuhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}

		cur := int(c - '0')
		if double {
			cur = cur * 2
			if cur > 9 {
				cur = cur%10 + cur/10
			}
		}

		sum += cur
		double = !double
	}

	return sum%10 == 0
}

func Luhn(fl v10validator.FieldLevel) bool {
	val := fl.Field()
	if val.Kind() != reflect.String || val.Len() == 0 {
		return false
	}

	return IsValidLuhn(val.String())
}

// CardText допускает строки из цифр, пробелов, дефисов и косой черты - в таком
// виде пользователь вводит номер карты и срок действия.
func CardText(fl v10validator.FieldLevel) bool {
	val := fl.Field()
	if val.Kind() != reflect.String {
		return false
	}

	for _, c := range val.String() {
		if (c < '0' || c > '9') && c != ' ' && c != '-' && c != '/' {
			return false
		}
	}

	return true
}
