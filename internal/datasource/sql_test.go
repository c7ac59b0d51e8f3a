package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmis/m/internal/database"
	"hmis/m/internal/migrations"
)

func TestSQLSources(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Run(db))

	at := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	_, err = db.Exec(`INSERT INTO appointments (id, patient, doctor, department, at, status) VALUES (?, ?, ?, ?, ?, ?)`,
		12, "Asha Rao", "Dr. Iyer", "ENT", at, "Scheduled")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO roles (id, name, description, users) VALUES (1, 'Nurse', NULL, 3)`)
	require.NoError(t, err)

	sources := SQLSources(db)

	rows, err := sources["appointments"].Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "APT00012", rows[0]["id"])
	assert.Equal(t, "05 Mar 2024", rows[0]["date"])
	assert.Equal(t, "09:30 AM", rows[0]["time"])

	rows, err = sources["roles"].Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["description"])

	rows, err = sources["returns"].Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuerySource_Normalizes(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	rows, err := QuerySource(db, `SELECT 'x' AS name, NULL AS note, 3 AS n`).Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0]["name"])
	assert.Equal(t, "", rows[0]["note"])
	assert.EqualValues(t, 3, rows[0]["n"])
}
