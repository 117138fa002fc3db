package brand

import (
	"github.com/ivanpodgorny/cardcheck/internal/entity"
)

// MaxPANLength - максимальная длина номера карты для любой платежной системы.
const MaxPANLength = 19

// Rule связывает диапазон префиксов [From, To] с платежной системой. From и To -
// строки цифр одинаковой длины. Для систем с переменной длиной номера (Variable)
// PANLength задает минимальную длину, точная длина уточняется запросом диапазонов BIN.
type Rule struct {
	From      string           `yaml:"from"`
	To        string           `yaml:"to"`
	PANLength int              `yaml:"pan_length"`
	Brand     entity.CardBrand `yaml:"brand"`
	Variable  bool             `yaml:"variable"`
}

type Table []Rule

// Detector определяет платежную систему по первым цифрам номера карты.
type Detector struct {
	table Table
}

func NewDetector(t Table) *Detector {
	return &Detector{table: t}
}

func DefaultTable() Table {
	return Table{
		{From: "4", To: "4", PANLength: 16, Brand: entity.BrandVisa},
		{From: "51", To: "55", PANLength: 16, Brand: entity.BrandMastercard},
		{From: "2221", To: "2720", PANLength: 16, Brand: entity.BrandMastercard},
		{From: "34", To: "34", PANLength: 15, Brand: entity.BrandAmex},
		{From: "37", To: "37", PANLength: 15, Brand: entity.BrandAmex},
		{From: "6011", To: "6011", PANLength: 16, Brand: entity.BrandDiscover},
		{From: "644", To: "649", PANLength: 16, Brand: entity.BrandDiscover},
		{From: "65", To: "65", PANLength: 16, Brand: entity.BrandDiscover},
		{From: "300", To: "305", PANLength: 16, Brand: entity.BrandDinersClub},
		{From: "36", To: "36", PANLength: 14, Brand: entity.BrandDinersClub},
		{From: "38", To: "38", PANLength: 16, Brand: entity.BrandDinersClub},
		{From: "35", To: "35", PANLength: 16, Brand: entity.BrandJCB},
		{From: "62", To: "62", PANLength: 16, Brand: entity.BrandUnionPay, Variable: true},
	}
}

// Detect возвращает платежную систему наиболее специфичного (с самым длинным
// префиксом) правила, которому соответствует номер. Для пустой строки и номеров,
// не подходящих ни под одно правило, возвращает entity.BrandUnknown.
func (d *Detector) Detect(digits string) entity.CardBrand {
	if r, ok := d.Match(digits); ok {
		return r.Brand
	}

	return entity.BrandUnknown
}

// Match возвращает наиболее специфичное правило, которому полностью соответствует номер.
func (d *Detector) Match(digits string) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	if digits == "" {
		return best, false
	}

	for _, r := range d.table {
		if r.matches(digits) && (!found || len(r.From) > len(best.From)) {
			best, found = r, true
		}
	}

	return best, found
}

// Possible возвращает платежные системы, правилам которых номер соответствует
// уже сейчас или может начать соответствовать после ввода следующих цифр.
func (d *Detector) Possible(digits string) []entity.CardBrand {
	var brands []entity.CardBrand
	seen := map[entity.CardBrand]bool{}
	for _, r := range d.table {
		if r.mayMatch(digits) && !seen[r.Brand] {
			seen[r.Brand] = true
			brands = append(brands, r.Brand)
		}
	}

	return brands
}

func (r Rule) matches(digits string) bool {
	if len(digits) < len(r.From) {
		return false
	}

	p := digits[:len(r.From)]

	return r.From <= p && p <= r.To
}

func (r Rule) mayMatch(digits string) bool {
	if len(digits) >= len(r.From) {
		return r.matches(digits)
	}

	n := len(digits)

	return r.From[:n] <= digits && digits <= r.To[:n]
}
