package controllers

import (
	"net/http"

	"github.com/angelmondragon/autocalc-backend/api/responses"
	"github.com/angelmondragon/autocalc-backend/api/validators"
	"github.com/angelmondragon/autocalc-backend/internal/quotes"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
)

// ScenarioEvaluate prices a deal: detected scenario, fee line items, tax and totals.
func ScenarioEvaluate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
			return
		}

		var req quotes.Request
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Evaluate(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
