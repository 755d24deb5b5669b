// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickvote/auth"
	"github.com/danielhkuo/quickvote/cliparse"
	"github.com/danielhkuo/quickvote/handlers"
	"github.com/danielhkuo/quickvote/middleware"
	"github.com/danielhkuo/quickvote/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	tokens := auth.NewManager(cfg.JWTSecret)

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(db, cfg)
	responseHandler := handlers.NewResponseHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Any signed-in caller
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(tokens, h))
	}
	// Survey creators only
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return user(middleware.RequireRole(h, models.RoleAdmin, models.RoleSuperAdmin))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey management
	mux.HandleFunc("POST /surveys", admin(surveyHandler.CreateSurvey))
	mux.HandleFunc("POST /surveys/import", admin(surveyHandler.ImportQuestions))
	mux.HandleFunc("GET /surveys", user(surveyHandler.ListSurveys))
	mux.HandleFunc("PUT /surveys/{id}", admin(surveyHandler.UpdateSurvey))
	mux.HandleFunc("POST /surveys/{id}/close", admin(surveyHandler.CloseSurvey))
	mux.HandleFunc("DELETE /surveys/{id}", admin(surveyHandler.DeleteSurvey))

	// Participation
	mux.HandleFunc("GET /surveys/{id}", user(surveyHandler.GetSurvey))
	mux.HandleFunc("POST /surveys/{id}/responses", user(responseHandler.SubmitResponses))
	mux.HandleFunc("GET /surveys/{id}/my-responses", user(responseHandler.GetMyResponses))

	// Results and analysis
	mux.HandleFunc("GET /surveys/{id}/results", admin(resultsHandler.GetResults))
	mux.HandleFunc("GET /surveys/{id}/analysis", user(resultsHandler.GetAnalysis))
	mux.HandleFunc("GET /surveys/{id}/report", admin(resultsHandler.DownloadReport))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickvote API v1"))
	})

	return mux
}
