// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickvote/auth"
	"github.com/danielhkuo/quickvote/cliparse"
	"github.com/danielhkuo/quickvote/importer"
	"github.com/danielhkuo/quickvote/middleware"
	"github.com/danielhkuo/quickvote/models"
)

// maxUploadSize caps question sheet uploads
const maxUploadSize = 10 << 20

type SurveyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewSurveyHandler(db *sql.DB, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{db: db, cfg: cfg, now: time.Now}
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}

	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateCreateSurvey(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	surveyID := uuid.NewString()
	createdAt := h.now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO survey (id, title, description, admin_email, participation_no, status, ends_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, surveyID, req.Title, strings.TrimSpace(req.Description), claims.Email(),
		req.ParticipationNo, models.StatusOpen, req.EndsAt.UTC(), createdAt)
	if err != nil {
		slog.Error("failed to insert survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	if err := insertQuestions(tx, surveyID, req.Questions); err != nil {
		slog.Error("failed to insert questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	slog.Info("survey created", "survey_id", surveyID, "admin", claims.Email(), "questions", len(req.Questions))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSurveyResponse{
		SurveyID: surveyID,
	})
}

// UpdateSurvey handles PUT /surveys/{id}
// Replaces the survey's fields and questions. Refused once answers exist.
func (h *SurveyHandler) UpdateSurvey(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}
	if !canManage(claims, survey) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the survey owner can edit it")
		return
	}
	if survey.Status == models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is closed")
		return
	}

	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateCreateSurvey(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var answered int
	err = tx.QueryRow(`SELECT COUNT(*) FROM survey_response WHERE survey_id = $1`, survey.ID).Scan(&answered)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if answered > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey already has responses")
		return
	}

	// Status may have changed since loadSurvey
	res, err := tx.Exec(`
		UPDATE survey
		SET title = $1, description = $2, participation_no = $3, ends_at = $4
		WHERE id = $5 AND status = $6
	`, req.Title, strings.TrimSpace(req.Description), req.ParticipationNo,
		req.EndsAt.UTC(), survey.ID, models.StatusOpen)
	if err != nil {
		slog.Error("failed to update survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is closed")
		return
	}

	for _, stmt := range []string{
		`DELETE FROM question_option WHERE survey_id = $1`,
		`DELETE FROM survey_question WHERE survey_id = $1`,
	} {
		if _, err := tx.Exec(stmt, survey.ID); err != nil {
			slog.Error("failed to clear questions", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
			return
		}
	}
	if err := insertQuestions(tx, survey.ID, req.Questions); err != nil {
		slog.Error("failed to insert questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}

	slog.Info("survey updated", "survey_id", survey.ID, "by", claims.Email(), "questions", len(req.Questions))

	updated, err := getSurvey(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	questions, err := getQuestions(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyWithQuestions{
		Survey:    *updated,
		Questions: questions,
	})
}

// ImportQuestions handles POST /surveys/import
// Parses an uploaded sheet into question drafts without storing anything
func (h *SurveyHandler) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	questions, err := importer.Parse(header.Filename, file)
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat), errors.Is(err, importer.ErrNoHeader):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Warn("failed to parse question sheet", "file", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not read question sheet")
		return
	}

	slog.Info("questions imported", "file", header.Filename, "questions", len(questions))

	middleware.JSONResponse(w, http.StatusOK, models.ImportQuestionsResponse{
		FileName:  header.Filename,
		Questions: questions,
	})
}

// ListSurveys handles GET /surveys
// Admins see their own surveys, superadmins see all, participants see open ones
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}

	query := `
		SELECT s.id, s.title, s.description, s.admin_email, s.participation_no,
		       s.status, s.ends_at, s.created_at,
		       (SELECT COUNT(*) FROM survey_question q WHERE q.survey_id = s.id)
		FROM survey s`
	var args []interface{}
	switch claims.Role {
	case models.RoleSuperAdmin:
	case models.RoleAdmin:
		query += ` WHERE s.admin_email = $1`
		args = append(args, claims.Email())
	default:
		query += ` WHERE s.status = $1`
		args = append(args, models.StatusOpen)
	}
	query += ` ORDER BY s.created_at DESC, s.id`

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query surveys", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := h.now()
	surveys := []models.SurveySummary{}
	for rows.Next() {
		var s models.SurveySummary
		var participationNo sql.NullInt64
		var endsAt sql.NullTime
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.AdminEmail, &participationNo,
			&s.Status, &endsAt, &s.CreatedAt, &s.QuestionCount,
		); err != nil {
			slog.Error("failed to scan survey", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		s.ParticipationNo = nullableInt(participationNo)
		s.EndsAt = nullableTime(endsAt)
		s.TimeLeft = formatTimeLeft(s.Survey, now)
		s.ClosesIn = formatClosesIn(s.Survey, now)
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate surveys", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, surveys)
}

// GetSurvey handles GET /surveys/{id}
// Returns questions and options without tallies
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}

	questions, err := getQuestions(h.db, survey.ID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyWithQuestions{
		Survey:    *survey,
		Questions: questions,
	})
}

// CloseSurvey handles POST /surveys/{id}/close
func (h *SurveyHandler) CloseSurvey(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}
	if !canManage(claims, survey) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the survey owner can close it")
		return
	}
	if survey.Status == models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is already closed")
		return
	}

	closedAt := h.now().UTC()
	_, err := h.db.Exec(`
		UPDATE survey
		SET status = $1, closed_at = $2
		WHERE id = $3
	`, models.StatusClosed, closedAt, survey.ID)
	if err != nil {
		slog.Error("failed to close survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close survey")
		return
	}

	slog.Info("survey closed", "survey_id", survey.ID, "by", claims.Email())

	middleware.JSONResponse(w, http.StatusOK, models.CloseSurveyResponse{
		ClosedAt: closedAt,
	})
}

// DeleteSurvey handles DELETE /surveys/{id}
func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	claims, ok := requestClaims(w, r)
	if !ok {
		return
	}
	survey, ok := loadSurvey(w, h.db, r.PathValue("id"))
	if !ok {
		return
	}
	if !canManage(claims, survey) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the survey owner can delete it")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Children first so drivers without cascading foreign keys stay consistent
	for _, stmt := range []string{
		`DELETE FROM survey_response WHERE survey_id = $1`,
		`DELETE FROM question_option WHERE survey_id = $1`,
		`DELETE FROM survey_question WHERE survey_id = $1`,
		`DELETE FROM survey WHERE id = $1`,
	} {
		if _, err := tx.Exec(stmt, survey.ID); err != nil {
			slog.Error("failed to delete survey", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete survey")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete survey")
		return
	}

	slog.Info("survey deleted", "survey_id", survey.ID, "by", claims.Email())

	w.WriteHeader(http.StatusNoContent)
}

// insertQuestions writes questions and their options in request order
func insertQuestions(tx *sql.Tx, surveyID string, questions []models.QuestionInput) error {
	for pos, q := range questions {
		_, err := tx.Exec(`
			INSERT INTO survey_question (survey_id, question_id, question_text, position)
			VALUES ($1, $2, $3, $4)
		`, surveyID, q.QuestionID, q.Text, pos)
		if err != nil {
			return err
		}

		for i, text := range q.Options {
			_, err = tx.Exec(`
				INSERT INTO question_option (survey_id, question_id, option_id, option_text, position)
				VALUES ($1, $2, $3, $4, $5)
			`, surveyID, q.QuestionID, i+1, text, i)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// requestClaims fetches the caller's claims or writes a 401
func requestClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
		return nil, false
	}
	return claims, true
}

// loadSurvey fetches a survey or writes a 404/500
func loadSurvey(w http.ResponseWriter, db *sql.DB, surveyID string) (*models.Survey, bool) {
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey id is required")
		return nil, false
	}

	survey, err := getSurvey(db, surveyID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to query survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return survey, true
}

// canManage reports whether the caller owns the survey. Superadmins manage all.
func canManage(claims *auth.Claims, survey *models.Survey) bool {
	return claims.Role == models.RoleSuperAdmin ||
		(claims.IsAdmin() && strings.EqualFold(claims.Email(), survey.AdminEmail))
}
