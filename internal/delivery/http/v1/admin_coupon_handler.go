package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/utils"
)

type AdminCouponHandler struct {
	couponUC *usecase.CouponUsecase
}

func NewAdminCouponHandler(uc *usecase.CouponUsecase) *AdminCouponHandler {
	return &AdminCouponHandler{couponUC: uc}
}

func (h *AdminCouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponUC.ListCoupons(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list coupons")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: coupons})
}

func (h *AdminCouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	coupon, err := h.couponUC.CreateCoupon(r.Context(), req)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: coupon})
}

func (h *AdminCouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.couponUC.DeleteCoupon(r.Context(), r.PathValue("id")); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Message: "Coupon deleted"})
}

type grantReq struct {
	UserID string `json:"userId"`
}

// GrantCoupon hands a copy of a global coupon to one user; the user's copy
// is single-use and its consumption never drains the global pool.
func (h *AdminCouponHandler) GrantCoupon(w http.ResponseWriter, r *http.Request) {
	var req grantReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := h.couponUC.Grant(r.Context(), req.UserID, r.PathValue("id"))
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		utils.WriteError(w, http.StatusNotFound, "Coupon not found")
	case errors.Is(err, domain.ErrUserNotFound):
		utils.WriteError(w, http.StatusNotFound, "User not found")
	case err != nil:
		utils.WriteError(w, http.StatusInternalServerError, "Failed to grant coupon")
	default:
		utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: coupon})
	}
}
