package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGradingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/seasons/{season}/grade", handler.GradeSeason)
	mux.HandleFunc("POST /v1/seasons/{season}/grade/anytime", handler.GradeSeasonAnyTime)
	mux.HandleFunc("POST /v1/seasons/{season}/regrade", handler.RegradeSeason)
	mux.HandleFunc("GET /v1/seasons/{season}/results", handler.ListSeasonResults)
	mux.HandleFunc("GET /v1/seasons/{season}/touchdowns/first", handler.ListFirstTouchdowns)
}

func registerPickRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/picks", handler.CreatePick)
	mux.HandleFunc("GET /v1/seasons/{season}/picks", handler.ListSeasonPicks)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillJob)))
}
