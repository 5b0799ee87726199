package validation

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Role  string   `json:"user_type" validate:"role_code"`
	Wards []string `json:"ward_codes" validate:"dive,required,ward_code"`
	Email string   `json:"email" validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestRoleCodeValidation(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(sample{Role: "005", Wards: []string{"W1"}, Email: "a@b.co"}))

	err := v.Struct(sample{Role: "123", Email: "a@b.co"})
	details := ToDetails(err)
	assert.Equal(t, "must be one of: 000, 777, 007, 005, 001, 009", details["user_type"])
}

func TestWardCodeDetails(t *testing.T) {
	err := newValidator().Struct(sample{Role: "001", Wards: []string{"ok", ""}, Email: "x"})
	details := ToDetails(err)
	assert.Equal(t, "is required", details["ward_codes[1]"])
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsPayloadErrors(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "empty body"}, ToDetails(io.EOF))

	var s sample
	err := json.Unmarshal([]byte(`{"user_type":`), &s)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"ward_codes":"A"}`), &s)
	assert.Equal(t, "must be []string", ToDetails(err)["ward_codes"])
}
