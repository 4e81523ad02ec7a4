// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

Every primary key in Quillpad is a UUIDv7 string. Values sort by creation
time, which keeps PostgreSQL B-tree indexes append-friendly.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
// Path identifiers are checked with it before reaching the database.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
