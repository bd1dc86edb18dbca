package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerPublicPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{playerID}/profile", handler.GetPlayerProfile)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedMyTeamRoutes(mux, handler, verifier)
	registerAuthorizedEditRoutes(mux, handler, verifier)
}

func registerAuthorizedMyTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/my-team", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("POST /v1/my-team/refresh", RequireAuth(verifier, http.HandlerFunc(handler.RefreshMyTeam)))
	mux.Handle("GET /v1/my-team/form", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeamForm)))
	mux.Handle("PUT /v1/my-team/captain", RequireAuth(verifier, http.HandlerFunc(handler.SetCaptain)))
	mux.Handle("PUT /v1/my-team/vice-captain", RequireAuth(verifier, http.HandlerFunc(handler.SetViceCaptain)))
	mux.Handle("POST /v1/my-team/swap", RequireAuth(verifier, http.HandlerFunc(handler.SwapStarter)))
}

func registerAuthorizedEditRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/my-team/edit", RequireAuth(verifier, http.HandlerFunc(handler.BeginEdit)))
	mux.Handle("DELETE /v1/my-team/edit", RequireAuth(verifier, http.HandlerFunc(handler.CancelEdit)))
	mux.Handle("GET /v1/my-team/edit/entries/{entryID}/candidates", RequireAuth(verifier, http.HandlerFunc(handler.ListCandidates)))
	mux.Handle("PUT /v1/my-team/entries/{entryID}/player", RequireAuth(verifier, http.HandlerFunc(handler.ReplacePlayer)))
}
