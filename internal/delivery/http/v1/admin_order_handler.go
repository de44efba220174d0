package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/pkg/utils"
)

// AdminOrderHandler exposes the back-office order board. Status updates
// past "in transit" happen here, outside the pricing core.
type AdminOrderHandler struct {
	orderRepo domain.OrderRepository
}

func NewAdminOrderHandler(orderRepo domain.OrderRepository) *AdminOrderHandler {
	return &AdminOrderHandler{orderRepo: orderRepo}
}

func (h *AdminOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OrderFilter{
		UserID: q.Get("userId"),
		Status: q.Get("status"),
		Limit:  utils.ParseInt(q.Get("limit"), 20),
		Offset: utils.ParseInt(q.Get("offset"), 0),
	}

	orders, total, err := h.orderRepo.GetAll(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    orders,
		Meta:    map[string]int64{"total": total},
	})
}

func (h *AdminOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: order})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch req.Status {
	case domain.OrderStatusInTransit, domain.OrderStatusPreparing,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		utils.WriteError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	if err := h.orderRepo.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Order updated"})
}
