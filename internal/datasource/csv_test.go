package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmis/m/internal/listing"
)

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.csv")
	data := "id, name ,users\n10,Nurse,4\n2,Doctor,12\n1, Admin ,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rows, err := CSVSource(path).Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, listing.Row{"id": "1", "name": "Admin", "users": "1"}, rows[2])

	sorted := listing.NewRowEngine(listing.Config{}).Sort(rows, listing.SortSpec{Field: "id"})
	assert.Equal(t, "Admin", sorted[0]["name"])
	assert.Equal(t, "Nurse", sorted[2]["name"])
}

func TestCSVSource_Errors(t *testing.T) {
	_, err := CSVSource(filepath.Join(t.TempDir(), "missing.csv")).Rows(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3\n"), 0o644))
	_, err = CSVSource(path).Rows(context.Background())
	assert.ErrorContains(t, err, "line 3")
}

func TestCSVSources_OnePerList(t *testing.T) {
	assert.Len(t, CSVSources("assets"), len(Specs))
}

func TestCSVSources_BundledLists(t *testing.T) {
	for name, src := range CSVSources(filepath.Join("..", "..", "assets", "lists")) {
		t.Run(name, func(t *testing.T) {
			rows, err := src.Rows(context.Background())
			require.NoError(t, err)
			require.NotEmpty(t, rows)

			spec, ok := SpecByName(name)
			require.True(t, ok)
			for _, row := range rows {
				assert.ElementsMatch(t, spec.Columns, row.Fields())
			}
		})
	}
}
