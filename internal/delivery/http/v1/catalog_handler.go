package v1

import (
	"net/http"

	"abarrotes-backend/internal/catalog"
	"abarrotes-backend/internal/domain"
	"abarrotes-backend/internal/usecase"
	"abarrotes-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

// Browse handles the storefront grid: free-text search OR taxonomy filters,
// price sort and the visible-window cursor ("pages" grows by one each time
// the client asks for more).
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := catalog.Params{
		Query:       q.Get("q"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Sort:        catalog.SortOrder(q.Get("sort")),
	}
	pages := utils.ParseInt(q.Get("pages"), 1)
	if pages < 1 {
		pages = 1
	}

	result, err := h.catalogUC.Browse(r.Context(), params, pages)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: result})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: product})
}
