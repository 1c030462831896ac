package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/autocalc-backend/api/responses"
	"github.com/angelmondragon/autocalc-backend/api/validators"
	"github.com/angelmondragon/autocalc-backend/internal/jurisdictions"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
)

// JurisdictionCatalog exposes the loaded fee catalogs.
type JurisdictionCatalog interface {
	Summaries() []jurisdictions.Summary
	Summary(key string) (jurisdictions.Summary, error)
}

func JurisdictionList(catalogs JurisdictionCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogs == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jurisdiction registry unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"jurisdictions": catalogs.Summaries()})
	}
}

func JurisdictionGet(catalogs JurisdictionCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalogs == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "jurisdiction registry unavailable"))
			return
		}

		summary, err := catalogs.Summary(validators.SanitizeString(chi.URLParam(r, "code"), 32))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
