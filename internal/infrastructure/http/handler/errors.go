package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

var errInvalidBody = errors.New("invalid request body")

// clientErrors maps domain errors to the status and message shown to callers.
// Anything else is reported with the handler's generic failure message.
var clientErrors = []struct {
	err     error
	status  int
	message string
}{
	{errInvalidBody, http.StatusBadRequest, "Invalid request body"},
	{domain.ErrInvalidProductID, http.StatusBadRequest, "Invalid product ID"},
	{domain.ErrMissingProductFields, http.StatusBadRequest, "All fields are required"},
	{domain.ErrInvalidCategoryID, http.StatusBadRequest, "Invalid category ID"},
	{domain.ErrInvalidPrice, http.StatusBadRequest, "Prices must be numeric"},
	{domain.ErrInvalidOfferImageID, http.StatusBadRequest, "Invalid offer image ID"},
	{domain.ErrOfferImageURLRequired, http.StatusBadRequest, "Image URL is required"},
	{domain.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{domain.ErrNoProductsInCategory, http.StatusNotFound, "No products found for this category"},
	{domain.ErrOfferImageNotFound, http.StatusNotFound, "Offer image not found"},
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			response.Error(w, ce.status, ce.message)
			return
		}
	}

	logger.ErrorContext(r.Context(), fallback,
		slog.String("error", err.Error()),
	)
	response.Error(w, http.StatusInternalServerError, fallback)
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, domain.ErrInvalidPrice):
		return err
	default:
		return errInvalidBody
	}
}
