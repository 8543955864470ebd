package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, raw string) GradeValue {
	t.Helper()
	var v GradeValue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestGradeValueAcceptsNumber(t *testing.T) {
	v := decodeValue(t, `7.5`)
	assert.False(t, v.Empty())
	assert.False(t, v.Invalid())
	assert.InDelta(t, 7.5, v.Float(), 0.001)
}

func TestGradeValueAcceptsNumericString(t *testing.T) {
	v := decodeValue(t, `" 8.25 "`)
	assert.False(t, v.Empty())
	assert.False(t, v.Invalid())
	assert.InDelta(t, 8.25, v.Float(), 0.001)
}

func TestGradeValueBlankMeansEmpty(t *testing.T) {
	assert.True(t, decodeValue(t, `""`).Empty())
	assert.True(t, decodeValue(t, `null`).Empty())
	assert.True(t, decodeValue(t, `"   "`).Empty())
}

func TestGradeValueBadStringIsInvalidNotError(t *testing.T) {
	v := decodeValue(t, `"abc"`)
	assert.False(t, v.Empty())
	assert.True(t, v.Invalid())
	assert.Equal(t, "abc", v.Raw())
}

func TestGradeValueMarshalRoundTrip(t *testing.T) {
	raw, err := json.Marshal(NumberValue(6))
	require.NoError(t, err)
	assert.Equal(t, "6", string(raw))

	raw, err = json.Marshal(GradeValue{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
