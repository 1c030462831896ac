package controllers

import (
	"net/http"

	"github.com/angelmondragon/autocalc-backend/api/responses"
	"github.com/angelmondragon/autocalc-backend/api/validators"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/loanterms"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
)

const maxTermMonths = 240

// LoanTermNormalize maps ?term= or ?min=&max= onto standard loan terms.
func LoanTermNormalize(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		term, hasTerm, err := validators.OptionalQueryInt(r, "term", 0, maxTermMonths)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if hasTerm {
			info, err := loanterms.Describe(term)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{
				"term":  info,
				"range": loanterms.Range{Min: info.Normalized, Max: info.Normalized, Label: loanterms.Label(info.Normalized, info.Normalized)},
			})
			return
		}

		minTerm, hasMin, err := validators.OptionalQueryInt(r, "min", 0, maxTermMonths)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		maxTerm, hasMax, err := validators.OptionalQueryInt(r, "max", 0, maxTermMonths)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !hasMin || !hasMax {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "either term or min and max are required"))
			return
		}

		normalized, err := loanterms.NormalizeRange(minTerm, maxTerm)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"range": normalized})
	}
}
