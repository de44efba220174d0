package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"abarrotes-backend/internal/domain"
	"abarrotes-backend/pkg/utils"
)

// ConfigHandler serves the store settings: the public read hands out the
// normalized (defaults-applied) view the storefront prices against.
type ConfigHandler struct {
	settingsRepo domain.SettingsRepository
}

func NewConfigHandler(settingsRepo domain.SettingsRepository) *ConfigHandler {
	return &ConfigHandler{settingsRepo: settingsRepo}
}

func (h *ConfigHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	stored, err := h.settingsRepo.Get(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: stored.Normalized()})
}

type AdminConfigHandler struct {
	settingsRepo domain.SettingsRepository
}

func NewAdminConfigHandler(settingsRepo domain.SettingsRepository) *AdminConfigHandler {
	return &AdminConfigHandler{settingsRepo: settingsRepo}
}

func (h *AdminConfigHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.StoreSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if s.PointValue != nil && *s.PointValue < 0 {
		utils.WriteError(w, http.StatusBadRequest, "pointValue cannot be negative")
		return
	}
	if s.PointsPercentage != nil && (*s.PointsPercentage < 0 || *s.PointsPercentage > 100) {
		utils.WriteError(w, http.StatusBadRequest, "pointsPercentage must be between 0 and 100")
		return
	}
	if s.DeliveryCost != nil && *s.DeliveryCost < 0 {
		utils.WriteError(w, http.StatusBadRequest, "deliveryCost cannot be negative")
		return
	}

	if err := h.settingsRepo.Update(r.Context(), &s); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: s.Normalized()})
}
