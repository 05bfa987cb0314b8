package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/api/validators"
)

// itemPath reads the actor plus the {homeId}/{itemId} pair shared by the
// catalog and inventory item routes.
func itemPath(r *http.Request) (actorID, homeID, itemID uuid.UUID, err error) {
	if actorID, err = requireActor(r); err != nil {
		return
	}
	if homeID, err = validators.PathUUID(r, "homeId"); err != nil {
		return
	}
	itemID, err = validators.PathUUID(r, "itemId")
	return
}
