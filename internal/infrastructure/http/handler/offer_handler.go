package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

// OfferHandler handles HTTP requests for offer images
type OfferHandler struct {
	service *service.OfferService
	logger  *slog.Logger
}

func NewOfferHandler(service *service.OfferService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		logger:  logger,
	}
}

// ListOfferImages handles GET /products/offerImage
func (h *OfferHandler) ListOfferImages(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOfferImages(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch offer images")
		return
	}

	response.Send(w, http.StatusOK, "Offer images fetched successfully", offers)
}

// CreateOfferImage handles POST /products/offerImage
func (h *OfferHandler) CreateOfferImage(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOfferImageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to create offer image")
		return
	}

	offer, err := h.service.CreateOfferImage(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to create offer image")
		return
	}

	response.Send(w, http.StatusCreated, "Offer image created successfully", offer)
}

// DeleteOfferImage handles DELETE /products/offerImage/{id}
func (h *OfferHandler) DeleteOfferImage(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteOfferImageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to delete offer image")
		return
	}

	if err := h.service.DeleteOfferImage(r.Context(), chi.URLParam(r, "id"), req.ImageURL); err != nil {
		writeError(w, r, h.logger, err, "Failed to delete offer image")
		return
	}

	response.Send(w, http.StatusOK, "Offer image deleted successfully", nil)
}
