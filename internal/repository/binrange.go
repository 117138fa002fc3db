package repository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type BINRange struct {
	db *sql.DB
}

func NewBINRange(db *sql.DB) *BINRange {
	return &BINRange{db: db}
}

// FindByPrefix возвращает сохраненные диапазоны, полученные по запросу для prefix.
// Данные отсортированы по префиксу диапазона.
func (r *BINRange) FindByPrefix(ctx context.Context, prefix string) ([]entity.BINRange, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT prefix, pan_length, brand
FROM bin_ranges
WHERE lookup_prefix = $1
ORDER BY prefix, pan_length
	`, prefix)
	if err != nil {
		return nil, err
	}

	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var ranges []entity.BINRange
	for rows.Next() {
		br := entity.BINRange{}
		if err := rows.Scan(&br.Prefix, &br.PANLength, &br.Brand); err != nil {
			return nil, err
		}

		ranges = append(ranges, br)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ranges, nil
}

// Save сохраняет диапазоны, полученные по запросу для prefix. Уже сохраненные
// диапазоны пропускаются.
func (r *BINRange) Save(ctx context.Context, prefix string, ranges []entity.BINRange) error {
	for _, br := range ranges {
		_, err := r.db.ExecContext(
			ctx,
			"INSERT INTO bin_ranges (lookup_prefix, prefix, pan_length, brand) VALUES ($1, $2, $3, $4)",
			prefix,
			br.Prefix,
			br.PANLength,
			br.Brand,
		)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			continue
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// FindPrefixes возвращает все префиксы, для которых сохранены диапазоны.
func (r *BINRange) FindPrefixes(ctx context.Context) (prefixes []string) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT lookup_prefix FROM bin_ranges")
	if err != nil {
		return nil
	}

	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		p := ""
		if err = rows.Scan(&p); err != nil {
			continue
		}

		prefixes = append(prefixes, p)
	}

	if err = rows.Err(); err != nil {
		return nil
	}

	return prefixes
}
