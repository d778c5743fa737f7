package handler

import (
	"net/http"

	"uiu-clinic-api/internal/delivery/http/middleware"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// currentUser reads the user set by AuthMiddleware, writing a 401 when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication credentials were not provided")
		return nil, false
	}
	return user, true
}

// pathUUID parses the named path variable, writing a 400 when it is not a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
