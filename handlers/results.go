// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickvote/analysis"
	"github.com/danielhkuo/quickvote/cliparse"
	"github.com/danielhkuo/quickvote/middleware"
	"github.com/danielhkuo/quickvote/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, now: time.Now}
}

// GetResults handles GET /surveys/{id}/results
// Owner only, includes the participant roster
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	survey, ok := h.ownedSurvey(w, r)
	if !ok {
		return
	}

	result, err := buildSurveyResult(h.db, survey, true)
	if err != nil {
		slog.Error("failed to build survey result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetAnalysis handles GET /surveys/{id}/analysis
// The owner gets the roster-based admin view, everyone else the
// response-count view with recommendations about their own answers.
func (h *ResultsHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	owner := canManage(claims, survey)
	result, err := buildSurveyResult(h.db, survey, owner)
	if err != nil {
		slog.Error("failed to build survey result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	opts := analysis.Options{
		Mode:     analysis.ModeRoster,
		Strategy: analysis.AdminStrategy,
		Clock:    h.now,
	}
	if !owner {
		responses, err := getUserResponses(h.db, survey.ID, claims.Email())
		if err != nil {
			slog.Error("failed to query responses", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		opts.Mode = analysis.ModeResponseCount
		opts.Strategy = analysis.ParticipantStrategy
		opts.Responses = responses
	}

	report, ok := h.analyze(w, result, opts)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}

// DownloadReport handles GET /surveys/{id}/report
// Owner only, returns the plain-text export as an attachment
func (h *ResultsHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	survey, ok := h.ownedSurvey(w, r)
	if !ok {
		return
	}

	result, err := buildSurveyResult(h.db, survey, true)
	if err != nil {
		slog.Error("failed to build survey result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	report, ok := h.analyze(w, result, analysis.Options{
		Mode:     analysis.ModeRoster,
		Strategy: analysis.AdminStrategy,
		Clock:    h.now,
	})
	if !ok {
		return
	}

	text, err := analysis.ToText(report, result)
	if err != nil {
		slog.Error("failed to render report", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, analysis.ReportFilename(survey.ID)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

// ownedSurvey loads the path survey and checks the caller manages it
func (h *ResultsHandler) ownedSurvey(w http.ResponseWriter, r *http.Request) (*models.Survey, bool) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return nil, false
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return nil, false
	}
	if !canManage(claims, survey) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the survey owner can view results")
		return nil, false
	}
	return survey, true
}

// analyze runs the engine, mapping rejected input to 422
func (h *ResultsHandler) analyze(w http.ResponseWriter, result *models.SurveyResult, opts analysis.Options) (*models.AnalysisReport, bool) {
	report, err := analysis.Analyze(result, opts)
	var invalid *analysis.InvalidInputError
	if errors.As(err, &invalid) {
		slog.Warn("survey result rejected by analysis", "field", invalid.Field, "reason", invalid.Reason)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, invalid.Error())
		return nil, false
	}
	if err != nil {
		slog.Error("failed to analyze survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to analyze survey")
		return nil, false
	}
	return report, true
}
