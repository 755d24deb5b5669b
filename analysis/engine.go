// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"time"

	"github.com/danielhkuo/quickvote/models"
)

// TimestampLayout is the ISO-8601 layout of AnalysisReport.Timestamp
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures a single Analyze call
type Options struct {
	Mode     ParticipationMode
	Strategy Strategy

	// Responses are the viewer's own answers, used by ParticipantStrategy
	Responses []models.UserResponse

	// Clock defaults to time.Now
	Clock func() time.Time
}

// Analyze derives an AnalysisReport from a survey result.
// The result is never modified. Only the timestamp depends on anything
// other than the inputs.
func Analyze(result *models.SurveyResult, opts Options) (*models.AnalysisReport, error) {
	if err := validate(result); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	completion := ComputeCompletionStats(result.Questions)
	rate := ComputeParticipationRate(result, opts.Mode)

	report := &models.AnalysisReport{
		Overview: models.Overview{
			TotalQuestions:    len(result.Questions),
			TotalParticipants: totalParticipants(result, opts.Mode),
			ParticipationRate: rate,
			CompletionStats:   completion,
		},
		Trends:          IdentifyTrends(result.Questions),
		Insights:        GenerateInsights(result),
		Recommendations: GenerateRecommendations(result, opts),
		Timestamp:       clock().UTC().Format(TimestampLayout),
	}

	return report, nil
}
