package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile", playerAttr(playerID))
	defer span.End()

	profile, err := h.profiles.GetProfile(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}
