package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCheckPasswordPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Abcdef1", true},
		{"abcdef1", false},
		{"ABCDEF1", false},
		{"Abcdefg", false},
		{"Ab1", false},
		{strings.Repeat("Ab1", 34), false},
		{"Ab1" + strings.Repeat("x", 97), true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CheckPasswordPolicy(tc.in), tc.in)
	}
}

func TestValidateUser(t *testing.T) {
	ok := &User{Login: "alice-1", Email: "a@example.com", CountryCode: "RU", Phone: strPtr("+7900"), Image: strPtr("http://img")}
	require.NoError(t, ValidateUser(ok))

	bad := *ok
	bad.Login = "alice_1"
	err := ValidateUser(&bad)
	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Login", ce.Field)
	assert.Equal(t, "login", ce.Rule)

	bad = *ok
	bad.Phone = strPtr("8900")
	require.ErrorAs(t, ValidateUser(&bad), &ce)
	assert.Equal(t, "phone", ce.Rule)

	bad = *ok
	bad.Email = strings.Repeat("e", 51)
	require.ErrorAs(t, ValidateUser(&bad), &ce)
	assert.Equal(t, "Email", ce.Field)

	bad = *ok
	bad.Image = strPtr(strings.Repeat("i", 201))
	require.ErrorAs(t, ValidateUser(&bad), &ce)
	assert.Equal(t, "Image", ce.Field)

	bad = *ok
	bad.Phone = nil
	bad.Image = nil
	assert.NoError(t, ValidateUser(&bad))
}

func TestValidatePost(t *testing.T) {
	assert.NoError(t, ValidatePost(strings.Repeat("я", MaxPostContentLength), make([]string, MaxPostTags)))
	assert.Error(t, ValidatePost(strings.Repeat("a", MaxPostContentLength+1), nil))
	assert.Error(t, ValidatePost("x", make([]string, MaxPostTags+1)))
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin("Bob-42"))
	assert.False(t, ValidateLogin(""))
	assert.False(t, ValidateLogin(strings.Repeat("a", 31)))
	assert.False(t, ValidateLogin("bob smith"))
}
