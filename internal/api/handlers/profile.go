package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/records"
)

// ProfileHandler handles the profile and theme preference endpoints.
type ProfileHandler struct {
	profile *records.ProfileService
	theme   *records.ThemeService
	log     zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profile *records.ProfileService, theme *records.ThemeService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
		theme:   theme,
		log:     log,
	}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.profile.Get(r.Context()))
}

// UpdateProfile handles PUT /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	merged := h.profile.Save(r.Context(), profile)
	middleware.WriteJSON(w, http.StatusOK, merged)
}

// GetTheme handles GET /api/theme
func (h *ProfileHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]domain.Theme{
		"theme": h.theme.Get(r.Context()),
	})
}

// UpdateTheme handles PUT /api/theme
func (h *ProfileHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme domain.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.theme.Set(r.Context(), req.Theme); err != nil {
		writeRecordError(w, h.log, err, "Failed to update theme")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]domain.Theme{"theme": req.Theme})
}
