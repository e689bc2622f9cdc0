package postgres_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/fwojciec/cellscan/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCellsSQL(t *testing.T) {
	t.Parallel()

	query := postgres.UpsertCellsSQL()

	t.Run("targets the warehouse schema", func(t *testing.T) {
		t.Parallel()

		assert.True(t, strings.HasPrefix(query, "INSERT INTO cellscan.cells ("))
	})

	t.Run("merges on the slug key", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, query, "ON CONFLICT (slug) DO UPDATE SET")
	})

	t.Run("placeholders match the column count", func(t *testing.T) {
		t.Parallel()

		start := strings.Index(query, "(")
		end := strings.Index(query, ")")
		require.Greater(t, end, start)
		columns := strings.Split(query[start+1:end], ", ")

		assert.Equal(t, len(columns), strings.Count(query, "$"))
		assert.Contains(t, query, "$"+strconv.Itoa(len(columns)))
		assert.NotContains(t, query, "$"+strconv.Itoa(len(columns)+1))
	})

	t.Run("never updates the key columns", func(t *testing.T) {
		t.Parallel()

		_, set, found := strings.Cut(query, "DO UPDATE SET ")
		require.True(t, found)

		assert.NotContains(t, set, "slug = EXCLUDED")
		assert.NotContains(t, set, " id = EXCLUDED")
		assert.Contains(t, set, "name = EXCLUDED.name")
		assert.Contains(t, set, "scraped_at = EXCLUDED.scraped_at")
	})
}
