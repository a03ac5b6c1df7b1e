package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	type request struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"required,oneof=OWNER VIEWER"`
		Note  string `json:"note,omitempty" validate:"max=5"`
	}

	tests := []struct {
		name    string
		in      request
		wantMsg string
	}{
		{"valid", request{Email: "a@b.test", Role: "OWNER"}, ""},
		{"missing email", request{Role: "OWNER"}, "email is required"},
		{"bad email", request{Email: "nope", Role: "OWNER"}, `malformed email "nope"`},
		{"bad role", request{Email: "a@b.test", Role: "owner"}, "role must be one of OWNER, VIEWER"},
		{"long note", request{Email: "a@b.test", Role: "VIEWER", Note: "toolong"}, "note exceeds 5 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestProfileUpdateTags(t *testing.T) {
	long := strings.Repeat("d", MaxDescriptionLen+1)
	require.Error(t, ValidateStruct(ProfileUpdate{Description: &long}))

	ok := "We hire."
	require.NoError(t, ValidateStruct(ProfileUpdate{Description: &ok}))

	// Nested branding is checked through the pointer.
	require.Error(t, ValidateStruct(ProfileUpdate{Branding: &Branding{PrimaryColor: "red"}}))
	require.NoError(t, ValidateStruct(ProfileUpdate{}))
}
