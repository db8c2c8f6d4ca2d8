package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	rows, err := ParseRows([]byte(`[{"segment":"loyal","purchase_count":3},{"segment":"new"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[0].GetFloat64("purchase_count")
	require.True(t, ok)
	assert.Equal(t, 3.0, *v)
}

func TestParseRows_NullAndEmpty(t *testing.T) {
	rows, err := ParseRows([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, rows)

	rows, err = ParseRows([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestParseRows_Invalid(t *testing.T) {
	_, err := ParseRows([]byte(`{"not":"an array"}`))
	require.ErrorIs(t, err, ErrJSONUnmarshalFailed)
}

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"dataset":"market","rows":[{"date":"2026-10-01","revenue":100}]}`))
	require.NoError(t, err)
	assert.Equal(t, "market", snap.Dataset)
	assert.Len(t, snap.Rows, 1)

	_, err = ParseSnapshot([]byte(`{"rows":[]}`))
	require.ErrorIs(t, err, ErrMissingDataset)

	_, err = ParseSnapshot([]byte(`not json`))
	require.ErrorIs(t, err, ErrJSONUnmarshalFailed)
}
