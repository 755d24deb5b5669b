// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickvote/models"
	"github.com/danielhkuo/quickvote/testutil"
)

const voterEmail = "voter@example.com"

func submit(t *testing.T, handler *ResponseHandler, surveyID, email string, responses []models.UserResponse) *httptest.ResponseRecorder {
	t.Helper()

	body := models.SubmitResponsesRequest{Responses: responses}
	req := testutil.MakeRequest("POST", "/surveys/"+surveyID+"/responses", body, nil)
	req = testutil.WithClaims(t, req, email, models.RoleParticipant)
	req.SetPathValue("id", surveyID)
	w := httptest.NewRecorder()

	handler.SubmitResponses(w, req)
	return w
}

func countResponses(t *testing.T, db *sql.DB, surveyID string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM survey_response WHERE survey_id = $1`, surveyID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSubmitResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResponseHandler(db, testutil.GetTestConfig())

	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-time.Minute)
	open := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusOpen, nil, &future, testutil.SurveyQuestions)
	closed := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusClosed, nil, &future, testutil.SurveyQuestions)
	expired := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusOpen, nil, &past, testutil.SurveyQuestions)

	answer := []models.UserResponse{{QuestionID: 1, SelectedOptionID: 2}}

	tests := []struct {
		name           string
		surveyID       string
		responses      []models.UserResponse
		expectedStatus int
	}{
		{"both questions", open, []models.UserResponse{{QuestionID: 1, SelectedOptionID: 3}, {QuestionID: 2, SelectedOptionID: 1}}, http.StatusOK},
		{"empty responses", open, nil, http.StatusBadRequest},
		{"unknown option", open, []models.UserResponse{{QuestionID: 2, SelectedOptionID: 3}}, http.StatusBadRequest},
		{"unknown question", open, []models.UserResponse{{QuestionID: 9, SelectedOptionID: 1}}, http.StatusBadRequest},
		{"closed survey", closed, answer, http.StatusConflict},
		{"expired survey", expired, answer, http.StatusConflict},
		{"missing survey", "missing", answer, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submit(t, handler, tt.surveyID, voterEmail, tt.responses)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.SubmitResponsesResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Saved != len(tt.responses) {
					t.Errorf("Expected %d saved, got %d", len(tt.responses), resp.Saved)
				}
			}
		})
	}

	if n := countResponses(t, db, open); n != 2 {
		t.Errorf("Expected 2 stored responses, got %d", n)
	}
	for _, id := range []string{closed, expired} {
		if n := countResponses(t, db, id); n != 0 {
			t.Errorf("Expected rejected survey to have no responses, got %d", n)
		}
	}
}

func TestSubmitResponses_ReplacesPreviousAnswer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResponseHandler(db, testutil.GetTestConfig())

	surveyID := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusOpen, nil, nil, testutil.SurveyQuestions)

	testutil.AssertStatus(t, submit(t, handler, surveyID, voterEmail, []models.UserResponse{{QuestionID: 1, SelectedOptionID: 1}}), http.StatusOK)
	testutil.AssertStatus(t, submit(t, handler, surveyID, voterEmail, []models.UserResponse{{QuestionID: 1, SelectedOptionID: 3}}), http.StatusOK)

	if n := countResponses(t, db, surveyID); n != 1 {
		t.Fatalf("Expected one response after resubmitting, got %d", n)
	}

	responses, err := getUserResponses(db, surveyID, voterEmail)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 1 || responses[0].SelectedOptionID != 3 {
		t.Errorf("Expected latest answer (option 3), got %+v", responses)
	}
}

func TestGetMyResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResponseHandler(db, testutil.GetTestConfig())

	surveyID := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusOpen, nil, nil, testutil.SurveyQuestions)
	testutil.SubmitTestResponse(t, db, surveyID, voterEmail, 2, 2)
	testutil.SubmitTestResponse(t, db, surveyID, voterEmail, 1, 3)
	testutil.SubmitTestResponse(t, db, surveyID, "someone@example.com", 1, 1)

	tests := []struct {
		name     string
		email    string
		expected []models.UserResponse
	}{
		{"answered both", voterEmail, []models.UserResponse{{QuestionID: 1, SelectedOptionID: 3}, {QuestionID: 2, SelectedOptionID: 2}}},
		{"answered nothing", "new@example.com", []models.UserResponse{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithClaims(t, httptest.NewRequest("GET", "/surveys/"+surveyID+"/my-responses", nil), tt.email, models.RoleParticipant)
			req.SetPathValue("id", surveyID)
			w := httptest.NewRecorder()

			handler.GetMyResponses(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.MyResponsesResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Responses) != len(tt.expected) {
				t.Fatalf("Expected %d responses, got %d", len(tt.expected), len(resp.Responses))
			}
			for i := range tt.expected {
				if resp.Responses[i] != tt.expected[i] {
					t.Errorf("Response %d: expected %+v, got %+v", i, tt.expected[i], resp.Responses[i])
				}
			}
		})
	}
}
