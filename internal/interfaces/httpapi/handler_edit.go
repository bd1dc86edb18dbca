package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginEdit")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := session.Edit.Begin(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "begin edit failed", "user_id", session.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editStatusToDTO(status))
}

func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelEdit")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editStatusToDTO(session.Edit.Cancel()))
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimSpace(r.PathValue("entryID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCandidates", entryAttr(entryID))
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	slot, players, err := session.Edit.Candidates(entryID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidatesDTO{
		Slot:    entryToDTO(slot),
		Players: playersToDTO(players),
	})
}

func (h *Handler) ReplacePlayer(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimSpace(r.PathValue("entryID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplacePlayer", entryAttr(entryID))
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replacePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	span.SetAttributes(playerAttr(req.PlayerID))
	snapshot, err := session.Edit.ReplacePlayer(ctx, entryID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "replace player failed",
			"user_id", session.UserID,
			"entry_id", entryID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}
