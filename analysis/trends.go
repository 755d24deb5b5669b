// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"fmt"
	"math"

	"github.com/danielhkuo/quickvote/models"
)

// Thresholds for trend and insight detection
const (
	trendRatio           = 0.6
	veryStrongTrendRatio = 0.8
	lowResponseCount     = 5
	minVotesForConsensus = 5
	evenSpreadTolerance  = 0.1
)

// IdentifyTrends reports questions where one option holds more than 60% of
// the votes. Ties go to the earlier option; zero-vote questions are skipped.
func IdentifyTrends(questions []models.Question) []models.Trend {
	trends := []models.Trend{}

	for _, q := range questions {
		total := totalVotes(q)
		if total == 0 {
			continue
		}

		best := q.Options[dominantOption(q)]
		ratio := float64(best.Frequency) / float64(total)
		if ratio <= trendRatio {
			continue
		}

		strength := models.StrengthStrong
		if ratio > veryStrongTrendRatio {
			strength = models.StrengthVeryStrong
		}

		trends = append(trends, models.Trend{
			Question:       q.QuestionText,
			DominantOption: best.OptionText,
			Percentage:     int(math.Round(ratio * 100)),
			Strength:       strength,
		})
	}

	return trends
}

// evenlyDistributed reports whether every option's share is within 0.1 of
// a uniform split
func evenlyDistributed(q models.Question, total int) bool {
	if len(q.Options) == 0 || total == 0 {
		return false
	}
	uniform := 1 / float64(len(q.Options))
	for _, opt := range q.Options {
		share := float64(opt.Frequency) / float64(total)
		if math.Abs(share-uniform) >= evenSpreadTolerance {
			return false
		}
	}
	return true
}

// GenerateInsights returns the low-response warning (if any) followed by
// per-question insights in question order.
func GenerateInsights(result *models.SurveyResult) []models.Insight {
	insights := []models.Insight{}
	if result == nil {
		return insights
	}

	if result.TotalResponses < lowResponseCount {
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: "Low response count may affect the reliability of results",
		})
	}

	for _, q := range result.Questions {
		total := totalVotes(q)
		if total == 0 {
			insights = append(insights, models.Insight{
				Type:    models.InsightWarning,
				Message: fmt.Sprintf("No responses for question: \"%s\"", q.QuestionText),
			})
			continue
		}

		if total >= minVotesForConsensus && evenlyDistributed(q, total) {
			insights = append(insights, models.Insight{
				Type:    models.InsightInfo,
				Message: fmt.Sprintf("Mixed opinions on \"%s\" - no clear consensus", q.QuestionText),
			})
		}
	}

	return insights
}
