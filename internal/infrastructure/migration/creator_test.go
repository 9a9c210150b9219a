package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePair(t *testing.T) {
	dir := t.TempDir()

	p, err := CreatePair(dir, "Create Orders Table")
	require.NoError(t, err)

	assert.Contains(t, p.UpPath, "_create_orders_table.up.sql")
	assert.Contains(t, p.DownPath, "_create_orders_table.down.sql")

	_, err = os.Stat(p.UpPath)
	assert.NoError(t, err)
	_, err = os.Stat(p.DownPath)
	assert.NoError(t, err)

	names, err := List(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "create_orders_table")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_index", sanitizeName("Add  Index"))
	assert.Equal(t, "mixed_case_123", sanitizeName("Mixed-Case_123"))
	assert.Equal(t, "trailing", sanitizeName("trailing--"))
}

func TestListMissingDirectory(t *testing.T) {
	names, err := List("does/not/exist")
	require.NoError(t, err)
	assert.Empty(t, names)
}
