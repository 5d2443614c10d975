package checkpoint

import (
	"testing"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	orders := execution.BuilderDefaults().SetLabelPrefix("orders").EnableBatchMode().MustBuild()
	require.NoError(t, store.Save("orders", orders))
	require.NoError(t, store.Save("events", execution.Defaults()))

	got, err := store.Load("orders")
	require.NoError(t, err)
	assert.True(t, got.Equal(orders))

	names, err := store.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"orders", "events"}, names)

	_, err = store.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete("orders"))
	require.NoError(t, store.Delete("orders"))
	_, err = store.Load("orders")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Close())
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	want := execution.NewBuilder().Disable2PC().SetMaxRetries(7).MustBuild()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("job", want))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load("job")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}
