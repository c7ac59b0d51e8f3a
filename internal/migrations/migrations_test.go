package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmis/m/internal/database"
)

func TestRun_Idempotent(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{
		"appointments", "catalog_items", "discard_items", "item_returns", "opd_visits",
		"order_items", "orders", "requisitions", "roles", "users",
	}, tables)
}
