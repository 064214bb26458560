package party

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDSlice(t *testing.T) {
	input := []ID{"server", "user"}
	reversed := []ID{"user", "server"}
	a, b := NewIDSlice(input), NewIDSlice(reversed)
	assert.Equal(t, a, b)
	assert.Equal(t, ID("user"), reversed[0], "input must not be mutated")
	require.NoError(t, a.Valid())

	assert.True(t, a.Contains("user"))
	assert.True(t, a.Contains("user", "server"))
	assert.False(t, a.Contains("other"))
	assert.Equal(t, IDSlice{"server"}, a.Remove("user"))
}

func TestIDSlice_Valid(t *testing.T) {
	tests := []struct {
		name     string
		partyIDs IDSlice
		valid    bool
	}{
		{"empty", IDSlice{}, true},
		{"sorted", IDSlice{"a", "b"}, true},
		{"unsorted", IDSlice{"b", "a"}, false},
		{"duplicate", IDSlice{"a", "a"}, false},
		{"empty id", IDSlice{""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.partyIDs.Valid()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIDSlice_WriteTo(t *testing.T) {
	var b1, b2 bytes.Buffer
	_, err := IDSlice{"ab", "c"}.WriteTo(&b1)
	require.NoError(t, err)
	_, err = IDSlice{"a", "bc"}.WriteTo(&b2)
	require.NoError(t, err)
	assert.NotEqual(t, b1.Bytes(), b2.Bytes())
}
