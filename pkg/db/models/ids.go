package models

import "github.com/google/uuid"

// assignID fills a missing primary key before insert so the same models work
// against databases without a uuid default.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
