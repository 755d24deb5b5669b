// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickvote/auth"
	"github.com/danielhkuo/quickvote/cliparse"
	"github.com/danielhkuo/quickvote/db"
	"github.com/danielhkuo/quickvote/middleware"
)

// TestJWTSecret signs tokens issued by IssueTestToken
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  cliparse.DatabaseSQLite,
		DatabaseURL:   ":memory:",
		JWTSecret:     TestJWTSecret,
		AllowedOrigin: "*",
	}
}

// IssueTestToken returns an Authorization header value for email and role
func IssueTestToken(t *testing.T, email, role string) string {
	t.Helper()

	token, err := auth.NewManager(TestJWTSecret).Issue(email, role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return "Bearer " + token
}

// AuthHeaders builds request headers carrying a token for email and role
func AuthHeaders(t *testing.T, email, role string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": IssueTestToken(t, email, role)}
}

// TestQuestion describes a question for CreateTestSurvey. Option IDs are 1-based.
type TestQuestion struct {
	ID      int
	Text    string
	Options []string
}

// CreateTestSurvey inserts a survey owned by adminEmail and returns its ID.
// status should be "open" or "closed"; endsAt may be nil.
func CreateTestSurvey(t *testing.T, conn *sql.DB, adminEmail, status string, participationNo *int, endsAt *time.Time, questions []TestQuestion) string {
	t.Helper()

	surveyID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO survey (id, title, description, admin_email, participation_no, status, ends_at, created_at)
		VALUES ($1, 'Test Survey', 'A test survey', $2, $3, $4, $5, $6)
	`, surveyID, adminEmail, participationNo, status, endsAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	for pos, q := range questions {
		_, err := conn.Exec(`
			INSERT INTO survey_question (survey_id, question_id, question_text, position)
			VALUES ($1, $2, $3, $4)
		`, surveyID, q.ID, q.Text, pos)
		if err != nil {
			t.Fatalf("Failed to create test question: %v", err)
		}

		for i, opt := range q.Options {
			_, err := conn.Exec(`
				INSERT INTO question_option (survey_id, question_id, option_id, option_text, position)
				VALUES ($1, $2, $3, $4, $5)
			`, surveyID, q.ID, i+1, opt, i)
			if err != nil {
				t.Fatalf("Failed to create test option: %v", err)
			}
		}
	}

	return surveyID
}

// SubmitTestResponse records one answer directly in the database
func SubmitTestResponse(t *testing.T, conn *sql.DB, surveyID, email string, questionID, optionID int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO survey_response (survey_id, question_id, participant_email, selected_option_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, surveyID, questionID, email, optionID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}
}

// WithClaims attaches verified claims to req, as RequireAuth would
func WithClaims(t *testing.T, req *http.Request, email, role string) *http.Request {
	t.Helper()

	claims := &auth.Claims{Role: role}
	claims.Subject = email
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}

// SurveyQuestions is the two-question fixture most handler tests use
var SurveyQuestions = []TestQuestion{
	{ID: 1, Text: "Favorite color?", Options: []string{"Red", "Blue", "Green"}},
	{ID: 2, Text: "Preferred meeting day?", Options: []string{"Monday", "Friday"}},
}
