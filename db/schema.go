// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both SQLite and PostgreSQL accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    admin_email TEXT NOT NULL,
    participation_no INTEGER,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    ends_at TIMESTAMP,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_survey_admin_email ON survey(admin_email);
CREATE INDEX IF NOT EXISTS idx_survey_status ON survey(status);

-- Questions
CREATE TABLE IF NOT EXISTS survey_question (
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL,
    question_text TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (survey_id, question_id)
);

-- Options
CREATE TABLE IF NOT EXISTS question_option (
    survey_id TEXT NOT NULL,
    question_id INTEGER NOT NULL,
    option_id INTEGER NOT NULL,
    option_text TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (survey_id, question_id, option_id),
    FOREIGN KEY (survey_id, question_id) REFERENCES survey_question(survey_id, question_id) ON DELETE CASCADE
);

-- Responses: one answer per participant per question
CREATE TABLE IF NOT EXISTS survey_response (
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL,
    participant_email TEXT NOT NULL,
    selected_option_id INTEGER NOT NULL,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (survey_id, question_id, participant_email)
);

CREATE INDEX IF NOT EXISTS idx_survey_response_participant ON survey_response(survey_id, participant_email);
`
