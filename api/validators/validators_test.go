package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/angelmondragon/homestock-backend/pkg/types"
)

type registerBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"short"}`))
	var body registerBody
	err := DecodeJSONBody(req, &body)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be a valid email", details["email"])
	require.Equal(t, "must be at least 8", details["password"])
}

func TestDecodeJSONBodyRejectsUnknownFieldsAndEmptyBody(t *testing.T) {
	var body registerBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"password123","admin":true}`))
	require.True(t, pkgerrors.HasCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.True(t, pkgerrors.HasCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"password123"}`))
	var body registerBody
	require.NoError(t, DecodeJSONBody(req, &body))
	require.Equal(t, "a@b.co", body.Email)
}

type patchBody struct {
	ImageURL types.Nullable[string] `json:"imageUrl" validate:"omitempty,url"`
}

func TestDecodeJSONBodyValidatesNullableFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"absent", `{}`, true},
		{"null clears", `{"imageUrl":null}`, true},
		{"url", `{"imageUrl":"https://example.com/rice.png"}`, true},
		{"not a url", `{"imageUrl":"rice.png"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body patchBody
			req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tc.payload))
			err := DecodeJSONBody(req, &body)
			if tc.valid {
				require.NoError(t, err)
				return
			}
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			details, ok := typed.Details().(map[string]string)
			require.True(t, ok)
			require.Equal(t, "must be a valid URL", details["imageUrl"])
		})
	}
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("homeId", id.String())
	rctx.URLParams.Add("bad", "123")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := PathUUID(req, "homeId")
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = PathUUID(req, "bad")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
