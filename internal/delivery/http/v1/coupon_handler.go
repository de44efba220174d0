package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/utils"
)

type CouponHandler struct {
	couponUC *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{couponUC: uc}
}

type redeemReq struct {
	Code string `json:"code"`
}

// Redeem buys a coupon from the rewards catalog with wallet points.
func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req redeemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := h.couponUC.Redeem(r.Context(), user.ID, req.Code)
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		utils.WriteError(w, http.StatusNotFound, "Coupon not found")
	case errors.Is(err, domain.ErrInsufficientPoints):
		utils.WriteError(w, http.StatusBadRequest, "Not enough points")
	case err != nil:
		utils.WriteError(w, http.StatusInternalServerError, "Failed to redeem coupon")
	default:
		utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: coupon})
	}
}
