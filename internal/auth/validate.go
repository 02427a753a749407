// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"regexp"
	"sort"
	"strings"
)

// Field names a form input. FieldGeneral carries errors not tied to one
// input, such as a rejected login.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldConfirm  Field = "confirmPassword"
	FieldGeneral  Field = "general"
)

// Fallback messages when the server gives no reason.
const (
	LoginFailedText  = "Login failed. Please try again."
	SignupFailedText = "Signup failed. Please try again."
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// LoginForm is the input of the login dialog.
type LoginForm struct {
	Email    string
	Password string
}

// SignupForm is the input of the signup dialog.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// FieldErrors maps each invalid field to its message. It is returned as an
// error from Login and Signup.
type FieldErrors map[Field]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	if msg, ok := fe[FieldGeneral]; ok {
		return msg
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fe[Field(f)])
	}
	return strings.Join(parts, "; ")
}

// Get returns the message for f, or "".
func (fe FieldErrors) Get(f Field) string {
	return fe[f]
}

// ValidateLogin checks a login form. It returns nil when the form is valid.
func ValidateLogin(f LoginForm) FieldErrors {
	errs := FieldErrors{}
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs[FieldPassword] = "Password is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSignup checks a signup form. It returns nil when the form is valid.
func ValidateSignup(f SignupForm) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		errs[FieldName] = "Name is required"
	case len([]rune(name)) < minNameLength:
		errs[FieldName] = "Name must be at least 2 characters long"
	}

	validateEmail(errs, f.Email)

	switch {
	case f.Password == "":
		errs[FieldPassword] = "Password is required"
	case len([]rune(f.Password)) < minPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters long"
	}

	switch {
	case f.ConfirmPassword == "":
		errs[FieldConfirm] = "Please confirm your password"
	case f.Password != f.ConfirmPassword:
		errs[FieldConfirm] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs FieldErrors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Please enter a valid email"
	}
}
