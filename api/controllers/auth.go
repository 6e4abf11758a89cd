package controllers

import (
	"net/http"

	"github.com/prijslijst/pricelist-backend/api/responses"
	"github.com/prijslijst/pricelist-backend/api/validators"
	"github.com/prijslijst/pricelist-backend/internal/users"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
)

// Login authenticates a staff account and returns a signed access token.
func Login(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var req users.LoginInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
