// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/validation"
)

// ValidateSymbolMiddleware rejects requests whose {symbol} URL parameter is
// not 1 to 10 letters or digits with 400 Bad Request. Universe membership is
// left to the stock service.
//
// Example usage in router:
//
//	r.Route("/stock/{symbol}", func(r chi.Router) {
//	    r.Use(middleware.ValidateSymbolMiddleware)
//	    r.Get("/", handler.Stock)
//	})
func ValidateSymbolMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := chi.URLParam(r, "symbol")

		if err := validation.ValidateSymbol(symbol); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
