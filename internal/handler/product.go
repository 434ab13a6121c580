package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/model"
	"storefront/internal/service"
)

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
}

func CreateProductHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !requireUser(w, r) {
			return
		}

		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}

		product, err := catalogSvc.Create(r.Context(), req.Name, req.Description, req.Price, req.Image)
		if err != nil {
			slog.Error("product create failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, product)
	}
}

func UpdateProductHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		product, err := catalogSvc.Update(r.Context(), &model.Product{
			ID:          chi.URLParam(r, "id"),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Image:       req.Image,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrProductNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				slog.Error("product update failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

func DeleteProductHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		msg, err := catalogSvc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("product delete failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

func ListProductsHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalogSvc.List(r.Context())
		if err != nil {
			slog.Error("product list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

// GetProductHandler answers a missing id with a JSON null body, not an error.
func GetProductHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := catalogSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("product get failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}
