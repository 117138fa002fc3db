package brand

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

type tableFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadTable читает таблицу правил из YAML-файла вида
//
//	rules:
//	  - {from: "4", to: "4", pan_length: 16, brand: visa}
func LoadTable(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := tableFile{}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse brand table %s: %w", path, err)
	}

	for i, r := range f.Rules {
		if err := r.check(); err != nil {
			return nil, fmt.Errorf("brand table %s, rule %d: %w", path, i, err)
		}
	}

	return f.Rules, nil
}

func (r Rule) check() error {
	if r.From == "" || len(r.From) != len(r.To) {
		return fmt.Errorf("from %q and to %q must be non-empty and of equal length", r.From, r.To)
	}

	if !isDigits(r.From) || !isDigits(r.To) || r.From > r.To {
		return fmt.Errorf("invalid prefix range %s-%s", r.From, r.To)
	}

	if r.PANLength < len(r.From) || r.PANLength > MaxPANLength {
		return fmt.Errorf("invalid pan length %d", r.PANLength)
	}

	if r.Brand == "" {
		return fmt.Errorf("brand is required")
	}

	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
