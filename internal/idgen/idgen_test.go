package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextFormat(t *testing.T) {
	g := Generator{Exists: func(table, id string) (bool, error) { return false, nil }}

	id, err := g.Next(EntityBooking)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "BKG-"), "got %q", id)

	suffix := strings.TrimPrefix(id, "BKG-")
	require.Len(t, suffix, 8)
	for _, r := range suffix {
		require.True(t, r >= '0' && r <= '9', "non-digit in %q", id)
	}
}

func TestNextRetriesOnCollision(t *testing.T) {
	calls := 0
	g := Generator{Exists: func(table, id string) (bool, error) {
		calls++
		return calls < 3, nil // first two candidates taken
	}}

	id, err := g.Next(EntityTransaction)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "TRN-"))
	require.Equal(t, 3, calls)
}

func TestNextChecksTheEntityTable(t *testing.T) {
	var table string
	g := Generator{Exists: func(tbl, id string) (bool, error) {
		table = tbl
		return false, nil
	}}

	_, err := g.Next(EntityEmi)
	require.NoError(t, err)
	require.Equal(t, "emis", table)
}
