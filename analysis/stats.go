// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"math"

	"github.com/danielhkuo/quickvote/models"
)

// ParticipationMode selects how the participation rate is derived
type ParticipationMode int

const (
	// ModeAuto uses the roster when one is present, response counts otherwise
	ModeAuto ParticipationMode = iota
	// ModeRoster divides the roster size by the declared target
	ModeRoster
	// ModeResponseCount normalizes total responses by question count first
	ModeResponseCount
)

func (m ParticipationMode) String() string {
	switch m {
	case ModeRoster:
		return "roster"
	case ModeResponseCount:
		return "response-count"
	default:
		return "auto"
	}
}

// Resolve returns the concrete mode used for result.
func (m ParticipationMode) Resolve(result *models.SurveyResult) ParticipationMode {
	if m != ModeAuto {
		return m
	}
	if result != nil && result.ParticipantEmails != nil {
		return ModeRoster
	}
	return ModeResponseCount
}

// totalVotes sums option frequencies for a question
func totalVotes(q models.Question) int {
	total := 0
	for _, opt := range q.Options {
		total += opt.Frequency
	}
	return total
}

// dominantOption returns the index of the first option with the highest
// frequency, or -1 when there are no options
func dominantOption(q models.Question) int {
	best := -1
	for i, opt := range q.Options {
		if best == -1 || opt.Frequency > q.Options[best].Frequency {
			best = i
		}
	}
	return best
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeCompletionStats counts questions with at least one vote.
// An empty question set yields 0%.
func ComputeCompletionStats(questions []models.Question) models.CompletionStats {
	withResponses := 0
	for _, q := range questions {
		if totalVotes(q) > 0 {
			withResponses++
		}
	}

	stats := models.CompletionStats{QuestionsWithResponses: withResponses}
	if len(questions) > 0 {
		stats.CompletionPercentage = int(math.Round(float64(withResponses) / float64(len(questions)) * 100))
	}
	return stats
}

// ComputeParticipationRate returns the participation percentage rounded to
// two decimals.
//
// Roster mode: len(participantEmails) / participationNo * 100, or 100 when
// no target was declared. Response-count mode: (totalResponses /
// totalQuestions) / participationNo * 100, or 0 when no target was
// declared. Zero denominators are treated as 1 in both modes.
func ComputeParticipationRate(result *models.SurveyResult, mode ParticipationMode) float64 {
	if result == nil {
		return 0
	}

	switch mode.Resolve(result) {
	case ModeRoster:
		if result.ParticipationNo == nil {
			return 100
		}
		target := max(*result.ParticipationNo, 1)
		return round2(float64(len(result.ParticipantEmails)) / float64(target) * 100)
	default:
		if result.ParticipationNo == nil {
			return 0
		}
		target := max(*result.ParticipationNo, 1)
		questions := max(len(result.Questions), 1)
		effective := float64(result.TotalResponses) / float64(questions)
		return round2(effective / float64(target) * 100)
	}
}

// totalParticipants is the roster size in roster mode and the normalized
// response count otherwise
func totalParticipants(result *models.SurveyResult, mode ParticipationMode) int {
	if mode.Resolve(result) == ModeRoster {
		return len(result.ParticipantEmails)
	}
	questions := max(len(result.Questions), 1)
	return int(math.Round(float64(result.TotalResponses) / float64(questions)))
}
