package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/service"
)

type createOrderRequest struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
	Status     string   `json:"status,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func CreateOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !requireUser(w, r) {
			return
		}

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.Create(r.Context(), req.UserID, req.ProductIDs, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProductNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, service.ErrPriceMissing):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			default:
				slog.Error("order create failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func UpdateOrderStatusHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				slog.Error("order status update failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

func DeleteOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		msg, err := orderSvc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("order delete failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.List(r.Context())
		if err != nil {
			slog.Error("order list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, orders)
	}
}

// GetOrderHandler answers a missing id with a JSON null body, not an error.
func GetOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := orderSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("order get failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

func UserOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.ListByUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			slog.Error("user orders failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, orders)
	}
}
