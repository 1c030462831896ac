package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/autocalc-backend/api/responses"
	"github.com/angelmondragon/autocalc-backend/api/validators"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
)

// VehicleDecode returns the decoded profile for the {vin} path parameter.
func VehicleDecode(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicles service unavailable"))
			return
		}

		vin := validators.SanitizeString(chi.URLParam(r, "vin"), 32)
		profile, err := svc.Decode(ctx, vin)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// WeightResolve runs the weight fallback chain for a jurisdiction.
func WeightResolve(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicles service unavailable"))
			return
		}

		var req vehicles.WeightRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resolution, err := svc.ResolveWeight(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolution)
	}
}
