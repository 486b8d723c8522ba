package pir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	records := [][]byte{
		{},
		{1},
		{1, 2, 3},
		make([]byte, 31),
		make([]byte, 32),
	}
	for _, r := range records {
		_, err := b.Insert(r)
		require.NoError(t, err)
	}

	db, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, len(records), db.NumRecords())
	for i, r := range records {
		require.Equal(t, r, db.View(i))
	}
	require.Equal(t, 32, db.MaxLen())
}

func TestBuildOnceOnly(t *testing.T) {
	b := NewBuilder()
	_, err := b.Insert([]byte{1, 2})
	require.NoError(t, err)

	_, err = b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	require.Error(t, err)
}

func TestInsertAfterBuildFails(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Insert([]byte{1})
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBuilder()
	_, err := b.Insert([]byte{1, 2, 3})
	require.NoError(t, err)

	clone := b.Clone()
	_, err = clone.Insert([]byte{4, 5})
	require.NoError(t, err)

	dbOrig, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, dbOrig.NumRecords())

	dbClone, err := clone.Build()
	require.NoError(t, err)
	require.Equal(t, 2, dbClone.NumRecords())
}

func TestEmptyDatabase(t *testing.T) {
	db, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, 0, db.NumRecords())
	require.Equal(t, 0, db.MaxLen())
}
