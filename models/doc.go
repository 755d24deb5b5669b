// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the survey-result contract the
web client already consumes.

# Request Types

  - CreateSurveyRequest: title, description, participationNo, endsAt, questions
  - QuestionInput: questionId (optional), text, options
  - SubmitResponsesRequest: responses ([]UserResponse)

# Response Types

  - CreateSurveyResponse: surveyId
  - SubmitResponsesResponse: saved, message
  - MyResponsesResponse: responses
  - ImportQuestionsResponse: fileName, questions
  - CloseSurveyResponse: closedAt
  - ErrorResponse: error, message

# Domain Types

  - Survey, SurveySummary, SurveyWithQuestions: survey metadata
  - SurveyResult, Question, Option: tallied results (analysis input)
  - UserResponse: one answered question for the current viewer
  - AnalysisReport, Overview, CompletionStats, Trend, Insight,
    Recommendation: analysis output

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Roles:

	RoleAdmin       = "admin"
	RoleSuperAdmin  = "superadmin"
	RoleParticipant = "participant"

Analysis enums:

	StrengthStrong, StrengthVeryStrong
	InsightWarning, InsightInfo
	PriorityHigh, PriorityMedium, PriorityLow
*/
package models
