// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickvote/models"
)

// validateCreateSurvey returns the first problem with req, or "" if valid.
// Question IDs are filled in from position when missing.
func validateCreateSurvey(req *models.CreateSurveyRequest) string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if len(req.Questions) == 0 {
		return "at least one question is required"
	}

	seen := make(map[int]bool, len(req.Questions))
	for i := range req.Questions {
		q := &req.Questions[i]
		n := i + 1

		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return fmt.Sprintf("question %d: text is required", n)
		}
		if len(q.Options) < 2 {
			return fmt.Sprintf("question %d: at least 2 options are required", n)
		}
		for j, opt := range q.Options {
			q.Options[j] = strings.TrimSpace(opt)
			if q.Options[j] == "" {
				return fmt.Sprintf("question %d: option %d is empty", n, j+1)
			}
		}

		if q.QuestionID <= 0 {
			q.QuestionID = n
		}
		if seen[q.QuestionID] {
			return fmt.Sprintf("question %d: duplicate questionId %d", n, q.QuestionID)
		}
		seen[q.QuestionID] = true
	}

	if req.EndsAt == nil || req.EndsAt.IsZero() {
		return "endsAt is required"
	}
	if req.ParticipationNo != nil && *req.ParticipationNo < 0 {
		return "participationNo must be non-negative"
	}

	return ""
}

// formatTimeLeft renders the countdown shown on survey cards
func formatTimeLeft(s models.Survey, now time.Time) string {
	if s.EndsAt == nil {
		return "No deadline"
	}
	remaining := s.EndsAt.Sub(now)
	if s.Status == models.StatusClosed || remaining <= 0 {
		return "Time Over"
	}

	days := int(remaining / (24 * time.Hour))
	hours := int(remaining % (24 * time.Hour) / time.Hour)
	minutes := int(remaining % time.Hour / time.Minute)
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// formatClosesIn is the humanized form, e.g. "3 days from now"
func formatClosesIn(s models.Survey, now time.Time) string {
	if s.EndsAt == nil {
		return ""
	}
	return humanize.RelTime(*s.EndsAt, now, "ago", "from now")
}

// acceptingResponses reports why a survey cannot take answers, or "" if it can
func acceptingResponses(s *models.Survey, now time.Time) string {
	if s.Status == models.StatusClosed {
		return "Survey is closed"
	}
	if s.EndsAt != nil && !now.Before(*s.EndsAt) {
		return "Survey has ended"
	}
	return ""
}
