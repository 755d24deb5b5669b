// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the QuickVote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SurveyHandler: Survey lifecycle (create, import, list, close, delete)
  - ResponseHandler: Answer submission and retrieval
  - ResultsHandler: Tallies, analysis and the text report

Handlers are created via constructor functions that accept *sql.DB and Config:

	surveyHandler := handlers.NewSurveyHandler(db, cfg)

Every handler expects RequireAuth to have stored the caller's claims in the
request context.

# Survey Lifecycle

Surveys are created open and close either at their deadline or when the
owner closes them:

	POST   /surveys             → CreateSurvey
	POST   /surveys/import      → ImportQuestions (preview only)
	GET    /surveys             → ListSurveys
	PUT    /surveys/{id}        → UpdateSurvey (owner, before any answers)
	POST   /surveys/{id}/close  → CloseSurvey (owner)
	DELETE /surveys/{id}        → DeleteSurvey (owner)

Superadmins count as the owner of every survey.

# Answering

	GET  /surveys/{id}              → GetSurvey
	POST /surveys/{id}/responses    → SubmitResponses (one answer per question, resubmits replace)
	GET  /surveys/{id}/my-responses → GetMyResponses

# Results

	GET /surveys/{id}/results  → GetResults (owner)
	GET /surveys/{id}/analysis → GetAnalysis
	GET /surveys/{id}/report   → DownloadReport (owner)

Results are tallied from survey_response on every request and passed to
the analysis package. Owners get the roster-based view; other callers get
the response-count view with advice about their own unanswered questions.
Input the analysis rejects is reported as 422.

# Error Responses

All errors return JSON:

	{"error": "Not Found", "message": "Survey not found"}

Common status codes:

  - 400: Invalid input
  - 401: Missing or invalid token
  - 403: Not the survey owner
  - 404: Survey not found
  - 409: Survey closed or past its deadline
  - 422: Stored results failed analysis validation
  - 500: Database error
*/
package handlers
