package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noteleaf/noteleaf-server/internal/store"
	"github.com/noteleaf/noteleaf-server/internal/validation"
)

type TestRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Email: "test@example.com",
		Name:  "Test User",
		Color: "#1a2b3c",
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        TestRequest
		wantErrMsg string
	}{
		{
			name: "missing required field",
			req: TestRequest{
				Email: "test@example.com",
				Name:  "",
			},
			wantErrMsg: "name",
		},
		{
			name: "invalid email",
			req: TestRequest{
				Email: "not-an-email",
				Name:  "Test",
			},
			wantErrMsg: "email",
		},
		{
			name: "bad color",
			req: TestRequest{
				Email: "test@example.com",
				Name:  "Test",
				Color: "reddish",
			},
			wantErrMsg: "color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var storeErr *store.Error
			if assert.True(t, errors.As(err, &storeErr)) {
				assert.Equal(t, http.StatusBadRequest, storeErr.HTTPCode())
				assert.Contains(t, storeErr.Message, tt.wantErrMsg)
			}
		})
	}
}

func TestValidator_MultipleFailuresAggregated(t *testing.T) {
	v := validation.New()

	err := v.Validate(TestRequest{Email: "nope", Name: "", Color: "bad"})
	assert.Error(t, err)

	var storeErr *store.Error
	if assert.True(t, errors.As(err, &storeErr)) {
		assert.Contains(t, storeErr.Message, "email")
		assert.Contains(t, storeErr.Message, "name")
		assert.Contains(t, storeErr.Message, "color")
	}
}
