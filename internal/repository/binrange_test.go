package repository

import (
	"context"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestBINRange_FindByPrefix(t *testing.T) {
	var (
		ctx       = context.Background()
		prefix    = "623551"
		errPrefix = "620000"
		ranges    = []entity.BINRange{
			{Prefix: "623551", PANLength: 19, Brand: entity.BrandUnionPay},
			{Prefix: "6235512", PANLength: 16, Brand: entity.BrandUnionPay},
		}
		query = `
SELECT prefix, pan_length, brand
FROM bin_ranges
WHERE lookup_prefix = $1
ORDER BY prefix, pan_length
`
	)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	r := NewBINRange(db)

	rows := sqlmock.NewRows([]string{"prefix", "pan_length", "brand"})
	for _, br := range ranges {
		rows.AddRow(br.Prefix, br.PANLength, br.Brand)
	}
	mock.ExpectQuery(query).
		WithArgs(prefix).
		WillReturnRows(rows)
	mock.ExpectQuery(query).
		WithArgs(errPrefix).
		WillReturnError(errors.New(""))

	found, err := r.FindByPrefix(ctx, prefix)
	assert.NoError(t, err, "успешное получение диапазонов")
	assert.Equal(t, ranges, found, "успешное получение диапазонов")

	_, err = r.FindByPrefix(ctx, errPrefix)
	assert.Error(t, err, "ошибка при получении диапазонов")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBINRange_FindByPrefixRowErrors(t *testing.T) {
	var (
		ctx    = context.Background()
		prefix = "623551"
		rowErr = errors.New("connection reset")
		query  = `
SELECT prefix, pan_length, brand
FROM bin_ranges
WHERE lookup_prefix = $1
ORDER BY prefix, pan_length
`
	)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	r := NewBINRange(db)

	mock.ExpectQuery(query).
		WithArgs(prefix).
		WillReturnRows(
			sqlmock.NewRows([]string{"prefix", "pan_length", "brand"}).
				AddRow("623551", 19, entity.BrandUnionPay).
				AddRow("6235512", 16, entity.BrandUnionPay).
				RowError(1, rowErr),
		)
	mock.ExpectQuery(query).
		WithArgs(prefix).
		WillReturnRows(
			sqlmock.NewRows([]string{"prefix", "pan_length", "brand"}).
				AddRow("623551", "девятнадцать", entity.BrandUnionPay),
		)

	found, err := r.FindByPrefix(ctx, prefix)
	assert.ErrorIs(t, err, rowErr, "ошибка чтения строки возвращается вызывающему")
	assert.Nil(t, found)

	found, err = r.FindByPrefix(ctx, prefix)
	assert.Error(t, err, "ошибка разбора строки возвращается вызывающему")
	assert.Nil(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBINRange_Save(t *testing.T) {
	var (
		ctx    = context.Background()
		prefix = "623551"
		ranges = []entity.BINRange{
			{Prefix: "623551", PANLength: 19, Brand: entity.BrandUnionPay},
			{Prefix: "6235512", PANLength: 16, Brand: entity.BrandUnionPay},
		}
		insertQuery = "INSERT INTO bin_ranges (lookup_prefix, prefix, pan_length, brand) VALUES ($1, $2, $3, $4)"
	)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	r := NewBINRange(db)

	mock.ExpectExec(insertQuery).
		WithArgs(prefix, ranges[0].Prefix, ranges[0].PANLength, ranges[0].Brand).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQuery).
		WithArgs(prefix, ranges[1].Prefix, ranges[1].PANLength, ranges[1].Brand).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectExec(insertQuery).
		WithArgs(prefix, ranges[0].Prefix, ranges[0].PANLength, ranges[0].Brand).
		WillReturnError(errors.New(""))

	assert.NoError(t, r.Save(ctx, prefix, ranges), "повторно сохраненный диапазон пропускается")
	assert.Error(t, r.Save(ctx, prefix, ranges[:1]), "ошибка при сохранении диапазона")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBINRange_FindPrefixes(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	r := NewBINRange(db)

	mock.
		ExpectQuery("SELECT DISTINCT lookup_prefix FROM bin_ranges").
		WillReturnRows(sqlmock.NewRows([]string{"lookup_prefix"}).AddRow("623551").AddRow("620000"))

	assert.Equal(t, []string{"623551", "620000"}, r.FindPrefixes(ctx), "успешное получение префиксов")
	assert.NoError(t, mock.ExpectationsWereMet())
}
