// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/danielhkuo/quickvote/models"
	"github.com/danielhkuo/quickvote/testutil"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// seedResults creates a survey with a target audience of 4 and five answers
// from three participants
func seedResults(t *testing.T, db *sql.DB) string {
	t.Helper()

	surveyID := testutil.CreateTestSurvey(t, db, ownerEmail, models.StatusOpen, testutil.IntPtr(4), nil, testutil.SurveyQuestions)
	testutil.SubmitTestResponse(t, db, surveyID, "alice@example.com", 1, 1)
	testutil.SubmitTestResponse(t, db, surveyID, "alice@example.com", 2, 2)
	testutil.SubmitTestResponse(t, db, surveyID, "bob@example.com", 1, 1)
	testutil.SubmitTestResponse(t, db, surveyID, "bob@example.com", 2, 1)
	testutil.SubmitTestResponse(t, db, surveyID, "carol@example.com", 1, 1)
	return surveyID
}

func newResultsHandler(db *sql.DB) *ResultsHandler {
	h := NewResultsHandler(db, testutil.GetTestConfig())
	h.now = func() time.Time { return fixedNow }
	return h
}

func resultsRequest(t *testing.T, path, surveyID, email, role string) *http.Request {
	t.Helper()

	req := testutil.WithClaims(t, httptest.NewRequest("GET", path, nil), email, role)
	req.SetPathValue("id", surveyID)
	return req
}

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newResultsHandler(db)
	surveyID := seedResults(t, db)

	t.Run("owner sees tallies and roster", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetResults(w, resultsRequest(t, "/surveys/"+surveyID+"/results", surveyID, ownerEmail, models.RoleAdmin))

		testutil.AssertStatus(t, w, http.StatusOK)
		var result models.SurveyResult
		testutil.AssertJSON(t, w, &result)

		if result.SurveyTitle != "Test Survey" {
			t.Errorf("Expected title 'Test Survey', got %q", result.SurveyTitle)
		}
		if result.TotalResponses != 5 {
			t.Errorf("Expected 5 responses, got %d", result.TotalResponses)
		}
		if result.ParticipationNo == nil || *result.ParticipationNo != 4 {
			t.Errorf("Expected participationNo 4, got %v", result.ParticipationNo)
		}
		want := "alice@example.com,bob@example.com,carol@example.com"
		if got := strings.Join(result.ParticipantEmails, ","); got != want {
			t.Errorf("Expected roster %s, got %s", want, got)
		}

		freqs := [][]int{}
		for _, q := range result.Questions {
			row := []int{}
			for _, opt := range q.Options {
				row = append(row, opt.Frequency)
			}
			freqs = append(freqs, row)
		}
		if len(freqs) != 2 || len(freqs[0]) != 3 || freqs[0][0] != 3 || freqs[0][1] != 0 || freqs[1][0] != 1 || freqs[1][1] != 1 {
			t.Errorf("Unexpected frequencies: %v", freqs)
		}
	})

	t.Run("other admin forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetResults(w, resultsRequest(t, "/surveys/"+surveyID+"/results", surveyID, otherAdmin, models.RoleAdmin))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("unknown survey", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetResults(w, resultsRequest(t, "/surveys/missing/results", "missing", ownerEmail, models.RoleAdmin))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetAnalysis(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newResultsHandler(db)
	surveyID := seedResults(t, db)

	tests := []struct {
		name              string
		email             string
		role              string
		totalParticipants int
		participationRate float64
		recommendation    string
	}{
		// roster of 3 out of 4
		{"owner", ownerEmail, models.RoleAdmin, 3, 75, "collect"},
		{"superadmin", rootEmail, models.RoleSuperAdmin, 3, 75, "collect"},
		// 5 answers over 2 questions is 2.5 participants out of 4
		{"participant with no answers", "dave@example.com", models.RoleParticipant, 3, 62.5, "2 questions remain unanswered"},
		{"participant with one answer", "carol@example.com", models.RoleParticipant, 3, 62.5, "1 questions remain unanswered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetAnalysis(w, resultsRequest(t, "/surveys/"+surveyID+"/analysis", surveyID, tt.email, tt.role))

			testutil.AssertStatus(t, w, http.StatusOK)
			var report models.AnalysisReport
			testutil.AssertJSON(t, w, &report)

			if report.Overview.TotalQuestions != 2 {
				t.Errorf("Expected 2 questions, got %d", report.Overview.TotalQuestions)
			}
			if report.Overview.TotalParticipants != tt.totalParticipants {
				t.Errorf("Expected %d participants, got %d", tt.totalParticipants, report.Overview.TotalParticipants)
			}
			if report.Overview.ParticipationRate != tt.participationRate {
				t.Errorf("Expected rate %v, got %v", tt.participationRate, report.Overview.ParticipationRate)
			}
			if report.Overview.CompletionStats.CompletionPercentage != 100 {
				t.Errorf("Expected completion 100, got %d", report.Overview.CompletionStats.CompletionPercentage)
			}
			if report.Timestamp != "2025-03-14T15:09:26.000Z" {
				t.Errorf("Unexpected timestamp %q", report.Timestamp)
			}

			found := false
			for _, rec := range report.Recommendations {
				if strings.Contains(strings.ToLower(rec.Action+" "+rec.Details), tt.recommendation) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a recommendation mentioning %q, got %+v", tt.recommendation, report.Recommendations)
			}
		})
	}
}

func TestDownloadReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := newResultsHandler(db)
	surveyID := seedResults(t, db)

	w := httptest.NewRecorder()
	handler.DownloadReport(w, resultsRequest(t, "/surveys/"+surveyID+"/report", surveyID, ownerEmail, models.RoleAdmin))

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Expected text/plain, got %q", ct)
	}
	wantDisposition := `attachment; filename="survey-analysis-` + surveyID + `.txt"`
	if cd := w.Header().Get("Content-Disposition"); cd != wantDisposition {
		t.Errorf("Expected Content-Disposition %q, got %q", wantDisposition, cd)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, "SURVEY ANALYSIS REPORT\n=====================\nSurvey Title: Test Survey\n") {
		t.Errorf("Unexpected report header:\n%s", body)
	}
	for _, want := range []string{"PARTICIPANTS (3)", "carol@example.com", "Target Audience: 4", "Audience Reach: 75.0%", "RECOMMENDATIONS"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}

	// Participants cannot export
	w = httptest.NewRecorder()
	handler.DownloadReport(w, resultsRequest(t, "/surveys/"+surveyID+"/report", surveyID, "alice@example.com", models.RoleParticipant))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestGetAnalysis_RejectedInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM survey\\s+WHERE id").WithArgs("s1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "description", "admin_email", "participation_no", "status", "ends_at", "created_at"}).
			AddRow("s1", "Broken", "", ownerEmail, nil, models.StatusOpen, nil, fixedNow))
	mock.ExpectQuery("FROM survey_question").WillReturnRows(
		sqlmock.NewRows([]string{"question_id", "question_text"}).AddRow(1, "Q?"))
	mock.ExpectQuery("FROM question_option").WillReturnRows(
		sqlmock.NewRows([]string{"question_id", "option_id", "option_text"}).AddRow(1, 1, "A").AddRow(1, 2, "B"))
	mock.ExpectQuery("GROUP BY question_id, selected_option_id").WillReturnRows(
		sqlmock.NewRows([]string{"question_id", "selected_option_id", "count"}))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM survey_response").WillReturnRows(
		sqlmock.NewRows([]string{"count"}).AddRow(-1))
	mock.ExpectQuery("SELECT DISTINCT participant_email").WillReturnRows(
		sqlmock.NewRows([]string{"participant_email"}))

	handler := newResultsHandler(db)
	w := httptest.NewRecorder()
	handler.GetAnalysis(w, resultsRequest(t, "/surveys/s1/analysis", "s1", ownerEmail, models.RoleAdmin))

	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
