package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

func (h *Handler) writeMyTeam(w http.ResponseWriter, r *http.Request, session *usecase.Session, snapshot usecase.RosterSnapshot) {
	writeSuccess(r.Context(), w, http.StatusOK, myTeamToDTO(snapshot, session.Store.Window(), session.Edit.Status(), h.now()))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.EnsureLoaded(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "load my team failed", "user_id", session.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}

// RefreshMyTeam reloads from the backend, typically after the user created a team elsewhere.
func (h *Handler) RefreshMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshMyTeam")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.NotifyTeamCreated(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh my team failed", "user_id", session.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}

func (h *Handler) GetMyTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeamForm")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.EnsureLoaded(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "load my team failed", "user_id", session.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if snapshot.Status != usecase.RosterStatusReady {
		writeError(ctx, w, usecase.ErrTeamRequired)
		return
	}

	items, err := h.profiles.RosterForm(ctx, snapshot.Entries)
	if err != nil {
		h.logger.WarnContext(ctx, "roster form failed", "user_id", session.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerFormsToDTO(items))
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req entryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.SetCaptain(ctx, req.EntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "set captain failed", "user_id", session.UserID, "entry_id", req.EntryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}

func (h *Handler) SetViceCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetViceCaptain")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req entryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.SetViceCaptain(ctx, req.EntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "set vice captain failed", "user_id", session.UserID, "entry_id", req.EntryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}

func (h *Handler) SwapStarter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapStarter")
	defer span.End()

	session, err := h.session(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req swapRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := session.Store.SwapStarter(ctx, req.BenchEntryID, req.StarterEntryID)
	if err != nil {
		h.logger.WarnContext(ctx, "swap starter failed",
			"user_id", session.UserID,
			"bench_entry_id", req.BenchEntryID,
			"starter_entry_id", req.StarterEntryID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	h.writeMyTeam(w, r.WithContext(ctx), session, snapshot)
}
