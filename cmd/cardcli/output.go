package main

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"io"
)

// printer выводит результаты проверки. Валидные значения выделяются зеленым,
// неполные желтым, ошибочные красным.
type printer struct {
	w      io.Writer
	colors map[string]*color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	if noColor {
		color.NoColor = true
	}

	return &printer{
		w: w,
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"title":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (p *printer) validation(v entity.CardValidation) {
	p.line("brand", string(v.Brand), p.colors["title"])
	p.field("number", v.Number)
	p.field("cvc", v.CVC)
	p.field("expiry", v.Expiry)
	if v.Pending {
		p.line("", "диапазоны BIN еще загружаются", p.colors["yellow"])
	}
}

func (p *printer) field(name string, r entity.FieldResult) {
	status := "valid"
	if !r.Valid {
		status = string(r.Reason)
	}

	p.line(name, fmt.Sprintf("%-24s %s", r.Display, p.stateColor(r.ValidationState).Sprint(status)), nil)
}

func (p *printer) result(value string, ok bool, text string) {
	c := p.colors["green"]
	if !ok {
		c = p.colors["red"]
	}

	p.line(value, text, c)
}

func (p *printer) line(name, text string, c *color.Color) {
	if c != nil {
		text = c.Sprint(text)
	}

	_, _ = fmt.Fprintf(p.w, "%-8s %s\n", name, text)
}

func (p *printer) stateColor(s entity.ValidationState) *color.Color {
	switch {
	case s.Valid:
		return p.colors["green"]
	case s.Reason == entity.ReasonEmpty || s.Reason == entity.ReasonIncomplete:
		return p.colors["yellow"]
	default:
		return p.colors["red"]
	}
}
