package migrations

import (
	"database/sql"
	"github.com/lopezator/migrator"
)

func Up(db *sql.DB) error {
	m, err := migrator.New(
		migrator.Migrations(
			&migrator.MigrationNoTx{
				Name: "Create bin_ranges table",
				Func: createBINRangesTable,
			},
		),
	)
	if err != nil {
		return err
	}

	return m.Migrate(db)
}

func createBINRangesTable(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE bin_ranges
(
    id            integer GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    lookup_prefix varchar(6)  NOT NULL,
    prefix        varchar(19) NOT NULL,
    pan_length    smallint    NOT NULL CHECK (pan_length BETWEEN 1 AND 19),
    brand         varchar(20) NOT NULL,
    created_at    timestamptz NOT NULL DEFAULT now(),
    UNIQUE (lookup_prefix, prefix, pan_length)
)
	`); err != nil {
		return err
	}

	_, err := db.Exec("CREATE INDEX bin_ranges_lookup_prefix_idx ON bin_ranges (lookup_prefix)")

	return err
}
