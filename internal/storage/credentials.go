// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promptvita/promptpro/internal/api"
)

// Keys used for the login session.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// ErrCorruptCredentials is returned when the stored user record cannot be
// decoded. Callers should clear the store.
var ErrCorruptCredentials = &StorageError{Message: "stored credentials are corrupt"}

// Credentials is the persisted login session.
type Credentials struct {
	Token string
	User  api.User
}

// LoadCredentials reads the session. It returns (nil, nil) when no token is
// stored.
func LoadCredentials(s Store) (*Credentials, error) {
	token, err := s.Get(KeyAuthToken)
	if errors.Is(err, ErrKeyNotFound) || (err == nil && token == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	creds := &Credentials{Token: token}
	raw, err := s.Get(KeyUser)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		return creds, nil
	case err != nil:
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &creds.User); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCredentials, err)
	}
	return creds, nil
}

// SaveCredentials persists token and user.
func SaveCredentials(s Store, creds Credentials) error {
	raw, err := json.Marshal(creds.User)
	if err != nil {
		return err
	}
	if err := s.Set(KeyAuthToken, creds.Token); err != nil {
		return err
	}
	return s.Set(KeyUser, string(raw))
}

// ClearCredentials removes both keys.
func ClearCredentials(s Store) error {
	return errors.Join(s.Delete(KeyAuthToken), s.Delete(KeyUser))
}
