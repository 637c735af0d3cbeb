package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	for in, want := range map[string]string{
		"":                         "DESC",
		"asc":                      "ASC",
		"  ASC ":                   "ASC",
		"desc":                     "DESC",
		"sideways":                 "DESC",
		"ASC; DROP TABLE users;--": "DESC",
	} {
		assert.Equal(t, want, ValidateSortOrder(in), "input %q", in)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "username"},
		{"email", "email"},
		{" role ", "role"},
		{"EMAIL", "username"},
		{"password_hash", "username"},
		{"email; DROP TABLE users;--", "username"},
		{"id UNION SELECT * FROM users", "username"},
		{"(SELECT password_hash FROM users)", "username"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.in, UserSortFields, "username"))
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "username ASC", orderClause("", "desc", UserSortFields, "username"))
	assert.Equal(t, "email DESC", orderClause("email", "desc", UserSortFields, "username"))
	assert.Equal(t, "created_at ASC", orderClause("created_at", "asc", UserSortFields, "username"))
	assert.Equal(t, "username DESC", orderClause("password_hash", "", UserSortFields, "username"))
}
