// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickvote/models"
)

var sectionHeaders = []string{
	"SURVEY ANALYSIS REPORT",
	"PARTICIPATION SUMMARY",
	"PARTICIPANTS (",
	"KEY TRENDS",
	"INSIGHTS",
	"RECOMMENDATIONS",
}

func TestToText_Golden(t *testing.T) {
	result := &models.SurveyResult{
		SurveyTitle:       "Lunch",
		TotalResponses:    10,
		ParticipationNo:   intPtr(20),
		ParticipantEmails: []string{"a@x.com", "b@x.com"},
		Questions: []models.Question{
			{QuestionID: 1, QuestionText: "Favorite food?", Options: []models.Option{
				{OptionID: 1, OptionText: "Pizza", Frequency: 8},
				{OptionID: 2, OptionText: "Sushi", Frequency: 2},
			}},
			{QuestionID: 2, QuestionText: "Drink?", Options: []models.Option{
				{OptionID: 1, OptionText: "Tea", Frequency: 0},
				{OptionID: 2, OptionText: "Coffee", Frequency: 0},
			}},
		},
	}

	report, err := Analyze(result, Options{Clock: fixedClock})
	require.NoError(t, err)

	text, err := ToText(report, result)
	require.NoError(t, err)

	expected := `SURVEY ANALYSIS REPORT
=====================
Survey Title: Lunch
Generated on: 3/14/2025, 3:09:26 PM

PARTICIPATION SUMMARY
--------------------
Total Participants: 2
Target Audience: 20
Audience Reach: 10.0%
Total Questions: 2
Questions with Responses: 1/2 (50%)

PARTICIPANTS (2)
-----------
1. a@x.com
2. b@x.com

KEY TRENDS
----------

• Favorite food?
  - Dominant Choice: Pizza
  - Support: 80%
  - Trend Strength: Strong


INSIGHTS
--------
• No responses for question: "Drink?"

RECOMMENDATIONS
--------------
No specific recommendations at this time.
`
	assert.Equal(t, expected, text)
}

func TestToText_Recommendations(t *testing.T) {
	report := &models.AnalysisReport{
		Recommendations: []models.Recommendation{
			{Priority: models.PriorityMedium, Action: "Collect more responses", Details: "More responses would increase the reliability of results"},
			{Priority: models.PriorityLow, Action: "Follow up on mixed opinions", Details: `Question "x" has diverse answers and may need further investigation`},
		},
		Timestamp: "2025-03-14T15:09:26.000Z",
	}

	text, err := ToText(report, &models.SurveyResult{})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(text, "RECOMMENDATIONS\n--------------\n"+
		"\n[MEDIUM] Collect more responses\nMore responses would increase the reliability of results\n"+
		"\n"+
		"\n[LOW] Follow up on mixed opinions\nQuestion \"x\" has diverse answers and may need further investigation\n"+
		"\n"), "unexpected tail:\n%s", text)
}

func TestToText_EmptySurveyKeepsEverySection(t *testing.T) {
	result := &models.SurveyResult{SurveyTitle: "Empty", Questions: []models.Question{}}

	report, err := Analyze(result, Options{Clock: fixedClock})
	require.NoError(t, err)
	report.Insights = nil
	report.Recommendations = nil

	text, err := ToText(report, result)
	require.NoError(t, err)

	for _, header := range sectionHeaders {
		assert.Contains(t, text, header)
	}
	assert.Contains(t, text, "PARTICIPANTS (0)\n-----------\n"+NoParticipants+"\n")
	assert.Contains(t, text, "KEY TRENDS\n----------\n"+NoTrends+"\n")
	assert.Contains(t, text, "INSIGHTS\n--------\n"+NoInsights+"\n")
	assert.Contains(t, text, "RECOMMENDATIONS\n--------------\n"+NoRecommendations+"\n")
	assert.Contains(t, text, "Target Audience: "+TargetNotSpecified+"\n")
	assert.Contains(t, text, "Audience Reach: 0.0%\n")
}

func TestToText_ParticipationLines(t *testing.T) {
	emails := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("p%d@example.com", i)
		}
		return out
	}

	tests := []struct {
		name       string
		target     *int
		emails     []string
		wantTarget string
		wantReach  string
	}{
		{"no target", nil, emails(3), TargetNotSpecified, "100.0%"},
		{"zero target counts as one", intPtr(0), emails(3), "0 (counted as 1)", "300.0%"},
		{"half rounds up", intPtr(400), emails(49), "400", "12.3%"},
		{"plain", intPtr(10), emails(1), "10", "10.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &models.SurveyResult{
				SurveyTitle:       "Reach",
				Questions:         []models.Question{question(1, "q", 1, 0)},
				ParticipationNo:   tt.target,
				ParticipantEmails: tt.emails,
			}

			report, err := Analyze(result, Options{Mode: ModeRoster, Clock: fixedClock})
			require.NoError(t, err)
			text, err := ToText(report, result)
			require.NoError(t, err)

			assert.Contains(t, text, "Target Audience: "+tt.wantTarget+"\n")
			assert.Contains(t, text, "Audience Reach: "+tt.wantReach+"\n")
		})
	}
}

func TestToText_HeadersForAnySize(t *testing.T) {
	for n := 0; n < 6; n++ {
		questions := make([]models.Question, n)
		for i := range questions {
			questions[i] = question(i+1, "q", i, 1)
		}
		result := &models.SurveyResult{Questions: questions, TotalResponses: n * 2}

		report, err := Analyze(result, Options{})
		require.NoError(t, err)
		text, err := ToText(report, result)
		require.NoError(t, err)

		for _, header := range sectionHeaders {
			assert.Contains(t, text, header, "n=%d", n)
		}
	}
}

func TestToText_NilReport(t *testing.T) {
	_, err := ToText(nil, &models.SurveyResult{})
	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestToText_UnparseableTimestamp(t *testing.T) {
	text, err := ToText(&models.AnalysisReport{Timestamp: "yesterday"}, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Generated on: yesterday\n")
	assert.Contains(t, text, "Survey Title: \n")
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "survey-analysis-42.txt", ReportFilename("42"))
}
