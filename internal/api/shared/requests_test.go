package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid payload",
			body: `{"email":"a@example.com","password":"pw"}`,
		},
		{
			name:    "unknown field",
			body:    `{"email":"a@example.com","admin":true}`,
			wantErr: true,
		},
		{
			name:    "trailing data",
			body:    `{"email":"a@example.com"}{"more":1}`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `email=a@example.com`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := DecodeJSON(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "a@example.com", dst.Email)
			}
		})
	}
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	t.Parallel()

	huge := `{"email":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge))

	var dst struct {
		Email string `json:"email"`
	}
	err := DecodeJSON(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}