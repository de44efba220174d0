package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/utils"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: uc}
}

// Quote prices the current cart with the requested coupon/points without
// committing anything; the storefront refreshes it as the buyer toggles
// discounts.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req usecase.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote, err := h.checkoutUC.Quote(r.Context(), user.ID, req)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to quote checkout")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: quote})
}

func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req usecase.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.checkoutUC.Confirm(r.Context(), user.ID, req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: result})
}

func (h *CheckoutHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	orders, err := h.checkoutUC.GetMyOrders(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: orders})
}
