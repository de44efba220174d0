package v1

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/utils"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	view, err := h.cartUC.Get(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

type addItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.cartUC.AddSimple(r.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		utils.WriteError(w, cartErrorStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

type addBulkReq struct {
	ProductID string  `json:"productId"`
	Weight    float64 `json:"weight"`
	Note      string  `json:"note"`
}

func (h *CartHandler) AddBulk(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req addBulkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.cartUC.AddBulk(r.Context(), user.ID, req.ProductID, req.Weight, req.Note)
	if err != nil {
		utils.WriteError(w, cartErrorStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

func (h *CartHandler) AddCombo(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var combo domain.Combo
	if err := json.NewDecoder(r.Body).Decode(&combo); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.cartUC.AddCombo(r.Context(), user.ID, combo)
	if err != nil {
		utils.WriteError(w, cartErrorStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

type updateQuantityReq struct {
	Delta int `json:"delta"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	index := utils.ParseInt(r.PathValue("index"), -1)
	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.cartUC.UpdateQuantity(r.Context(), user.ID, index, req.Delta)
	if err != nil {
		utils.WriteError(w, cartErrorStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	index := utils.ParseInt(r.PathValue("index"), -1)

	view, err := h.cartUC.Remove(r.Context(), user.ID, index)
	if err != nil {
		utils.WriteError(w, cartErrorStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: view})
}

func cartErrorStatus(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "sold by weight"),
		strings.Contains(msg, "insufficient stock"),
		strings.Contains(msg, "limit"),
		strings.Contains(msg, "greater than 0"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
