package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, IDLength)
	assert.Regexp(t, "^[0-9a-f]{24}$", id)
	assert.NotEqual(t, id, NewID())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid lowercase", input: "507f1f77bcf86cd799439011"},
		{name: "valid uppercase", input: "507F1F77BCF86CD799439011"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "507f1f77bcf86cd79943901", wantErr: true},
		{name: "too long", input: "507f1f77bcf86cd7994390111", wantErr: true},
		{name: "not hex", input: "zzzzzzzzzzzzzzzzzzzzzzzz", wantErr: true},
		{name: "integer id", input: "42", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oid, err := ParseID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.input), len(oid.Hex()))
		})
	}
}

func TestCanonicalID(t *testing.T) {
	id, err := CanonicalID("507F1F77BCF86CD799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id)

	id, err = CanonicalID("507f1f77bcf86cd799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id)

	_, err = CanonicalID("507F1F77BCF86CD79943901G")
	assert.ErrorIs(t, err, ErrInvalidID)
}
