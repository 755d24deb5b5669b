package models

import "time"

// Survey status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Role constants carried in the bearer token
const (
	RoleAdmin       = "admin"
	RoleSuperAdmin  = "superadmin"
	RoleParticipant = "participant"
)

// Trend strength constants
const (
	StrengthStrong     = "Strong"
	StrengthVeryStrong = "Very Strong"
)

// Insight type constants
const (
	InsightWarning = "warning"
	InsightInfo    = "info"
)

// Recommendation priority constants
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Request types

type QuestionInput struct {
	QuestionID int      `json:"questionId,omitempty"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
}

type CreateSurveyRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ParticipationNo *int            `json:"participationNo,omitempty"`
	EndsAt          *time.Time      `json:"endsAt,omitempty"`
	Questions       []QuestionInput `json:"questions"`
}

type SubmitResponsesRequest struct {
	Responses []UserResponse `json:"responses"`
}

// Response types

type CreateSurveyResponse struct {
	SurveyID string `json:"surveyId"`
}

type SubmitResponsesResponse struct {
	Saved   int    `json:"saved"`
	Message string `json:"message"`
}

type MyResponsesResponse struct {
	Responses []UserResponse `json:"responses"`
}

type ImportQuestionsResponse struct {
	FileName  string          `json:"fileName"`
	Questions []QuestionInput `json:"questions"`
}

type CloseSurveyResponse struct {
	ClosedAt time.Time `json:"closedAt"`
}

// Domain types

type Survey struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AdminEmail      string     `json:"adminEmail"`
	ParticipationNo *int       `json:"participationNo,omitempty"`
	Status          string     `json:"status"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// SurveySummary is a dashboard row for an admin's survey list.
type SurveySummary struct {
	Survey
	QuestionCount int    `json:"questionCount"`
	TimeLeft      string `json:"timeLeft"`
	ClosesIn      string `json:"closesIn,omitempty"`
}

type SurveyQuestion struct {
	QuestionID   int            `json:"questionId"`
	QuestionText string         `json:"questionText"`
	Options      []SurveyOption `json:"options"`
}

type SurveyOption struct {
	OptionID   int    `json:"optionId"`
	OptionText string `json:"optionText"`
}

type SurveyWithQuestions struct {
	Survey    Survey           `json:"survey"`
	Questions []SurveyQuestion `json:"questions"`
}

// Result types

// Option is one selectable answer and its vote count.
type Option struct {
	OptionID   int    `json:"optionId"`
	OptionText string `json:"optionText"`
	Frequency  int    `json:"frequency"`
}

// Question holds options in display order.
type Question struct {
	QuestionID   int      `json:"questionId"`
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"options"`
}

// SurveyResult is the fetched snapshot the analysis runs over.
// ParticipantEmails is nil when no roster is available.
type SurveyResult struct {
	SurveyTitle       string     `json:"surveyTitle"`
	Questions         []Question `json:"questions"`
	TotalResponses    int        `json:"totalResponses"`
	ParticipationNo   *int       `json:"participationNo,omitempty"`
	ParticipantEmails []string   `json:"participantEmails,omitempty"`
}

// UserResponse is one answered question for the current viewer.
type UserResponse struct {
	QuestionID       int `json:"questionId"`
	SelectedOptionID int `json:"selectedOptionId"`
}

// Analysis types

type CompletionStats struct {
	QuestionsWithResponses int `json:"questionsWithResponses"`
	CompletionPercentage   int `json:"completionPercentage"`
}

type Overview struct {
	TotalQuestions    int             `json:"totalQuestions"`
	TotalParticipants int             `json:"totalParticipants"`
	ParticipationRate float64         `json:"participationRate"`
	CompletionStats   CompletionStats `json:"completionStats"`
}

type Trend struct {
	Question       string `json:"question"`
	DominantOption string `json:"dominantOption"`
	Percentage     int    `json:"percentage"`
	Strength       string `json:"strength"`
}

type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Recommendation struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

type AnalysisReport struct {
	Overview        Overview         `json:"overview"`
	Trends          []Trend          `json:"trends"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Timestamp       string           `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
