// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the small persistent key/value store that holds
// the login token and cached user record between runs.
//
// # Key Types
//
//   - Store: Get/Set/Delete over string keys
//   - FileStore: one JSON object on disk, rewritten atomically
//   - SQLiteStore: a single kv table in a SQLite database
//   - Credentials: the authToken/user pair kept in a Store
//   - Watcher: reports changes made to the store by other processes
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	creds, err := storage.LoadCredentials(store)
//
// # Storage Location
//
// Both backends live under ~/.promptpro/ (or $PROMPTPRO_HOME) with 0600
// permissions: storage.json for the file backend and storage.db for SQLite.
package storage
