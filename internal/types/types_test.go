package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeDocument(t *testing.T) {
	doc := NewResumeDocument("some text", []string{"python", "sql", "python", "", "git"})

	assert.Equal(t, "some text", doc.Text)
	assert.Equal(t, []string{"python", "sql", "git"}, doc.Skills)
}

func TestNewResumeDocumentNoSkills(t *testing.T) {
	doc := NewResumeDocument("plain text", nil)
	assert.Empty(t, doc.Skills)
}

func TestCreateUserRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "s3curePass!"},
		},
		{
			name:    "missing name",
			req:     CreateUserRequest{Email: "ada@example.com", Password: "s3curePass!"},
			wantErr: true,
		},
		{
			name:    "bad email",
			req:     CreateUserRequest{Name: "Ada", Email: "not-an-email", Password: "s3curePass!"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Email: "ada@example.com", Password: "s3curePass!"}
	require.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "ada@example.com"}
	assert.Error(t, missing.Validate())
}
