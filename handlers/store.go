// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickvote/models"
)

// getSurvey loads survey metadata. Returns sql.ErrNoRows if missing.
func getSurvey(db *sql.DB, surveyID string) (*models.Survey, error) {
	var s models.Survey
	var participationNo sql.NullInt64
	var endsAt sql.NullTime

	err := db.QueryRow(`
		SELECT id, title, description, admin_email, participation_no, status, ends_at, created_at
		FROM survey
		WHERE id = $1
	`, surveyID).Scan(
		&s.ID, &s.Title, &s.Description, &s.AdminEmail,
		&participationNo, &s.Status, &endsAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ParticipationNo = nullableInt(participationNo)
	s.EndsAt = nullableTime(endsAt)
	return &s, nil
}

// getQuestions loads questions and their options in display order
func getQuestions(db *sql.DB, surveyID string) ([]models.SurveyQuestion, error) {
	rows, err := db.Query(`
		SELECT question_id, question_text
		FROM survey_question
		WHERE survey_id = $1
		ORDER BY position
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.SurveyQuestion{}
	index := make(map[int]int)
	for rows.Next() {
		q := models.SurveyQuestion{Options: []models.SurveyOption{}}
		if err := rows.Scan(&q.QuestionID, &q.QuestionText); err != nil {
			return nil, err
		}
		index[q.QuestionID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := db.Query(`
		SELECT question_id, option_id, option_text
		FROM question_option
		WHERE survey_id = $1
		ORDER BY question_id, position
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var questionID int
		var opt models.SurveyOption
		if err := optRows.Scan(&questionID, &opt.OptionID, &opt.OptionText); err != nil {
			return nil, err
		}
		if i, ok := index[questionID]; ok {
			questions[i].Options = append(questions[i].Options, opt)
		}
	}

	return questions, optRows.Err()
}

type choice struct {
	questionID int
	optionID   int
}

// getOptionFrequencies counts responses per selected option
func getOptionFrequencies(db *sql.DB, surveyID string) (map[choice]int, error) {
	rows, err := db.Query(`
		SELECT question_id, selected_option_id, COUNT(*)
		FROM survey_response
		WHERE survey_id = $1
		GROUP BY question_id, selected_option_id
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[choice]int)
	for rows.Next() {
		var c choice
		var n int
		if err := rows.Scan(&c.questionID, &c.optionID, &n); err != nil {
			return nil, err
		}
		counts[c] = n
	}

	return counts, rows.Err()
}

// getParticipantEmails lists everyone who answered at least one question
func getParticipantEmails(db *sql.DB, surveyID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT participant_email
		FROM survey_response
		WHERE survey_id = $1
		ORDER BY participant_email
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

// getUserResponses returns one participant's answers ordered by question
func getUserResponses(db *sql.DB, surveyID, email string) ([]models.UserResponse, error) {
	rows, err := db.Query(`
		SELECT question_id, selected_option_id
		FROM survey_response
		WHERE survey_id = $1 AND participant_email = $2
		ORDER BY question_id
	`, surveyID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.UserResponse{}
	for rows.Next() {
		var resp models.UserResponse
		if err := rows.Scan(&resp.QuestionID, &resp.SelectedOptionID); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}

// buildSurveyResult tallies a survey into the shape the analysis engine
// consumes. The participant roster is only attached for the owner.
func buildSurveyResult(db *sql.DB, survey *models.Survey, withRoster bool) (*models.SurveyResult, error) {
	questions, err := getQuestions(db, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	counts, err := getOptionFrequencies(db, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option frequencies: %w", err)
	}

	// One row per answered question, so this is a vote count
	var total int
	err = db.QueryRow(`SELECT COUNT(*) FROM survey_response WHERE survey_id = $1`, survey.ID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	result := &models.SurveyResult{
		SurveyTitle:     survey.Title,
		Questions:       make([]models.Question, 0, len(questions)),
		TotalResponses:  total,
		ParticipationNo: survey.ParticipationNo,
	}
	for _, q := range questions {
		tallied := models.Question{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Options:      make([]models.Option, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			tallied.Options = append(tallied.Options, models.Option{
				OptionID:   opt.OptionID,
				OptionText: opt.OptionText,
				Frequency:  counts[choice{q.QuestionID, opt.OptionID}],
			})
		}
		result.Questions = append(result.Questions, tallied)
	}

	if withRoster {
		emails, err := getParticipantEmails(db, survey.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get participants: %w", err)
		}
		result.ParticipantEmails = emails
	}

	return result, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
