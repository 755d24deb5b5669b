// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"fmt"

	"github.com/danielhkuo/quickvote/models"
)

// Strategy selects which recommendation rules apply
type Strategy int

const (
	// AdminStrategy looks at overall volume and split opinions
	AdminStrategy Strategy = iota
	// ParticipantStrategy looks at the viewer's own unanswered questions
	ParticipantStrategy
)

func (s Strategy) String() string {
	if s == ParticipantStrategy {
		return "participant"
	}
	return "admin"
}

const (
	moreResponsesThreshold = 10
	mixedOpinionShare      = 0.4
)

// GenerateRecommendations applies the rules of opts.Strategy.
func GenerateRecommendations(result *models.SurveyResult, opts Options) []models.Recommendation {
	if result == nil {
		return []models.Recommendation{}
	}
	if opts.Strategy == ParticipantStrategy {
		return participantRecommendations(result, opts)
	}
	return adminRecommendations(result)
}

func adminRecommendations(result *models.SurveyResult) []models.Recommendation {
	recs := []models.Recommendation{}

	if result.TotalResponses < moreResponsesThreshold {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityMedium,
			Action:   "Collect more responses",
			Details:  "More responses would increase the reliability of results",
		})
	}

	for _, q := range result.Questions {
		total := totalVotes(q)
		if total < minVotesForConsensus {
			continue
		}

		top := q.Options[dominantOption(q)].Frequency
		if float64(top)/float64(total) < mixedOpinionShare {
			recs = append(recs, models.Recommendation{
				Priority: models.PriorityLow,
				Action:   "Follow up on mixed opinions",
				Details:  fmt.Sprintf("Question \"%s\" has diverse answers and may need further investigation", q.QuestionText),
			})
		}
	}

	return recs
}

func participantRecommendations(result *models.SurveyResult, opts Options) []models.Recommendation {
	recs := []models.Recommendation{}

	if ComputeParticipationRate(result, opts.Mode) >= 100 {
		return recs
	}

	answered := make(map[int]bool, len(opts.Responses))
	for _, resp := range opts.Responses {
		answered[resp.QuestionID] = true
	}

	unanswered := 0
	for _, q := range result.Questions {
		if !answered[q.QuestionID] {
			unanswered++
		}
	}

	if unanswered > 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityHigh,
			Action:   "Complete remaining questions",
			Details:  fmt.Sprintf("%d questions remain unanswered", unanswered),
		})
	}

	return recs
}
