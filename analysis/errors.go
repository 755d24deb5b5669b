// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"fmt"

	"github.com/danielhkuo/quickvote/models"
)

// InvalidInputError reports a survey result that cannot be analyzed.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid survey result: %s %s", e.Field, e.Reason)
}

// validate rejects malformed input. Zero-valued but well-formed input is fine.
func validate(result *models.SurveyResult) error {
	if result == nil {
		return &InvalidInputError{Field: "result", Reason: "is nil"}
	}
	if result.Questions == nil {
		return &InvalidInputError{Field: "questions", Reason: "is missing"}
	}
	if result.TotalResponses < 0 {
		return &InvalidInputError{Field: "totalResponses", Reason: "is negative"}
	}
	if result.ParticipationNo != nil && *result.ParticipationNo < 0 {
		return &InvalidInputError{Field: "participationNo", Reason: "is negative"}
	}
	for _, q := range result.Questions {
		for _, opt := range q.Options {
			if opt.Frequency < 0 {
				return &InvalidInputError{
					Field:  fmt.Sprintf("questions[%d].options[%d].frequency", q.QuestionID, opt.OptionID),
					Reason: "is negative",
				}
			}
		}
	}
	return nil
}
