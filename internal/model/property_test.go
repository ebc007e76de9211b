package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"a.png", "b.png"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "a.png,b.png", v)

	v, err = StringList{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      interface{}
		expected StringList
	}{
		{"string", "Pool, Garage ,Garden", StringList{"Pool", "Garage", "Garden"}},
		{"bytes", []byte("a.png"), StringList{"a.png"}},
		{"empty", "", StringList{}},
		{"null", nil, StringList{}},
		{"blank items", ",,x,", StringList{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.expected, l)
		})
	}

	var l StringList
	assert.Error(t, l.Scan(42))
}

func TestStringList_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Property{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []interface{}{}, decoded["images"])
	assert.Equal(t, []interface{}{}, decoded["amenities"])
}

func TestUser(t *testing.T) {
	hash := "h"
	u := User{Role: RoleAdmin, PasswordHash: &hash}
	assert.True(t, u.IsAdmin())
	assert.True(t, u.HasPassword())

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "password")

	oauthOnly := User{Role: RoleUser}
	assert.False(t, oauthOnly.IsAdmin())
	assert.False(t, oauthOnly.HasPassword())
}
