package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_Deterministic(t *testing.T) {
	a := NewMock(42).Appointments(20)
	b := NewMock(42).Appointments(20)
	assert.Equal(t, a, b)

	c := NewMock(7).Appointments(20)
	assert.NotEqual(t, a, c)
}

func TestMockSources_HomogeneousRows(t *testing.T) {
	for name, src := range MockSources(42, 25) {
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

func TestMock_RolesCapped(t *testing.T) {
	assert.Len(t, NewMock(1).Roles(100), 8)
	assert.Len(t, NewMock(1).Roles(3), 3)
}
