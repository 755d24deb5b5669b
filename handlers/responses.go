// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickvote/cliparse"
	"github.com/danielhkuo/quickvote/middleware"
	"github.com/danielhkuo/quickvote/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg, now: time.Now}
}

// SubmitResponses handles POST /surveys/{id}/responses
// Each answer replaces the caller's previous answer to the same question
func (h *ResponseHandler) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}

	var req models.SubmitResponsesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Responses) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "responses are required")
		return
	}

	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	now := h.now().UTC()
	if msg := acceptingResponses(survey, now); msg != "" {
		middleware.ErrorResponse(w, http.StatusConflict, msg)
		return
	}

	questions, err := getQuestions(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid := make(map[choice]bool)
	for _, q := range questions {
		for _, opt := range q.Options {
			valid[choice{q.QuestionID, opt.OptionID}] = true
		}
	}
	for _, resp := range req.Responses {
		if !valid[choice{resp.QuestionID, resp.SelectedOptionID}] {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("option %d is not valid for question %d", resp.SelectedOptionID, resp.QuestionID))
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, resp := range req.Responses {
		_, err = tx.Exec(`
			INSERT INTO survey_response (survey_id, question_id, participant_email, selected_option_id, submitted_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (survey_id, question_id, participant_email)
			DO UPDATE SET selected_option_id = excluded.selected_option_id, submitted_at = excluded.submitted_at
		`, survey.ID, resp.QuestionID, claims.Email(), resp.SelectedOptionID, now)
		if err != nil {
			slog.Error("failed to save response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save responses")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save responses")
		return
	}

	slog.Info("responses submitted", "survey_id", survey.ID, "participant", claims.Email(), "answers", len(req.Responses))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponsesResponse{
		Saved:   len(req.Responses),
		Message: "Responses saved",
	})
}

// GetMyResponses handles GET /surveys/{id}/my-responses
func (h *ResponseHandler) GetMyResponses(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	responses, err := getUserResponses(h.db, survey.ID, claims.Email())
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyResponsesResponse{
		Responses: responses,
	})
}
