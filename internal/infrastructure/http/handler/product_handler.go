package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to create product")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to create product")
		return
	}

	response.Send(w, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to update product")
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to update product")
		return
	}

	response.Send(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err, "Failed to delete product")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id"), req.Image); err != nil {
		writeError(w, r, h.logger, err, "Failed to delete product")
		return
	}

	response.Send(w, http.StatusOK, "Product deleted successfully", nil)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch product")
		return
	}

	response.Send(w, http.StatusOK, "Product fetched successfully", product)
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch products")
		return
	}

	response.Send(w, http.StatusOK, "Products fetched successfully", products)
}

// ListProductsByCategory handles GET /products/category/{productCategoryId}
func (h *ProductHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "productCategoryId"))
	if err != nil {
		writeError(w, r, h.logger, domain.ErrInvalidCategoryID, "Failed to fetch products")
		return
	}

	products, err := h.service.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, h.logger, err, "Failed to fetch products")
		return
	}

	response.Send(w, http.StatusOK, "Products fetched successfully", products)
}
