// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want FieldErrors
	}{
		{"valid", LoginForm{"ada@example.com", "x"}, nil},
		{"empty", LoginForm{}, FieldErrors{FieldEmail: "Email is required", FieldPassword: "Password is required"}},
		{"whitespace email", LoginForm{"   ", "x"}, FieldErrors{FieldEmail: "Email is required"}},
		{"no dot", LoginForm{"ada@example", "x"}, FieldErrors{FieldEmail: "Please enter a valid email"}},
		{"no at", LoginForm{"ada.example.com", "x"}, FieldErrors{FieldEmail: "Please enter a valid email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLogin(tt.form))
		})
	}
}

func TestValidateSignup(t *testing.T) {
	valid := SignupForm{Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"}

	tests := []struct {
		name   string
		mutate func(f *SignupForm)
		field  Field
		msg    string
	}{
		{"name missing", func(f *SignupForm) { f.Name = "  " }, FieldName, "Name is required"},
		{"name short", func(f *SignupForm) { f.Name = " A " }, FieldName, "Name must be at least 2 characters long"},
		{"email invalid", func(f *SignupForm) { f.Email = "nope" }, FieldEmail, "Please enter a valid email"},
		{"password missing", func(f *SignupForm) { f.Password = ""; f.ConfirmPassword = "" }, FieldPassword, "Password is required"},
		{"password short", func(f *SignupForm) { f.Password = "12345"; f.ConfirmPassword = "12345" }, FieldPassword, "Password must be at least 6 characters long"},
		{"confirm missing", func(f *SignupForm) { f.ConfirmPassword = "" }, FieldConfirm, "Please confirm your password"},
		{"confirm mismatch", func(f *SignupForm) { f.ConfirmPassword = "secret2" }, FieldConfirm, "Passwords do not match"},
	}

	assert.Nil(t, ValidateSignup(valid))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			errs := ValidateSignup(form)
			assert.Equal(t, tt.msg, errs.Get(tt.field))
		})
	}
}

func TestValidateSignup_MultibyteName(t *testing.T) {
	errs := ValidateSignup(SignupForm{Name: "李", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"})
	assert.Equal(t, "Name must be at least 2 characters long", errs.Get(FieldName))

	assert.Nil(t, ValidateSignup(SignupForm{Name: "李白", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"}))
}

func TestFieldErrors_Error(t *testing.T) {
	assert.Equal(t, "boom", FieldErrors{FieldGeneral: "boom", FieldEmail: "x"}.Error())
	assert.Equal(t, "Email is required; Password is required",
		FieldErrors{FieldPassword: "Password is required", FieldEmail: "Email is required"}.Error())
}

func TestModal(t *testing.T) {
	var m Modal
	assert.False(t, m.IsOpen())

	m.Open(ModeSignup)
	assert.True(t, m.IsOpen())
	assert.Equal(t, ModeSignup, m.Mode())

	m.Switch()
	assert.Equal(t, ModeLogin, m.Mode())
	m.Switch()
	assert.Equal(t, ModeSignup, m.Mode())

	m.Close()
	assert.False(t, m.IsOpen())
	assert.Equal(t, ModeLogin, m.Mode(), "closing resets to login")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "verifying", StateVerifying.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "invalid", StateInvalid.String())
	assert.Equal(t, "signup", ModeSignup.String())
}
