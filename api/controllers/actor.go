package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/api/middleware"
	"github.com/angelmondragon/homestock-backend/api/responses"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/angelmondragon/homestock-backend/pkg/types"
)

// requireActor returns the session user set by RequireUser.
func requireActor(r *http.Request) (uuid.UUID, error) {
	id := middleware.UserIDFromContext(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "Missing session")
	}
	return id, nil
}

func writeDeleted(w http.ResponseWriter, message string) {
	responses.WriteOK(w, types.MessageResponse{Message: message})
}
