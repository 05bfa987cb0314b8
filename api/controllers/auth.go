package controllers

import (
	"net/http"

	"github.com/angelmondragon/homestock-backend/api/responses"
	"github.com/angelmondragon/homestock-backend/api/validators"
	"github.com/angelmondragon/homestock-backend/internal/auth"
	"github.com/angelmondragon/homestock-backend/pkg/logger"
	"github.com/angelmondragon/homestock-backend/pkg/types"
)

type cookieWriter interface {
	Set(w http.ResponseWriter, token string)
	Clear(w http.ResponseWriter)
}

// AuthRegister creates an account and starts a session for it.
func AuthRegister(svc auth.Service, cookies cookieWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookies.Set(w, sess.Token)
		responses.WriteJSON(w, http.StatusCreated, auth.UserResponse{User: sess.User})
	}
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, cookies cookieWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookies.Set(w, sess.Token)
		responses.WriteOK(w, auth.UserResponse{User: sess.User})
	}
}

func AuthGoogle(svc auth.Service, cookies cookieWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.GoogleLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := svc.GoogleLogin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookies.Set(w, sess.Token)
		responses.WriteOK(w, auth.UserResponse{User: sess.User})
	}
}

// AuthMe returns the profile of the session user. It runs behind RequireUser.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w, auth.UserResponse{User: user})
	}
}

// AuthLogout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke and the call never fails.
func AuthLogout(cookies cookieWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.Clear(w)
		responses.WriteOK(w, types.OKResponse{OK: true})
	}
}
