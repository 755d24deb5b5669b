// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickvote/models"
)

// Placeholders substituted for empty report sections
const (
	NoParticipants     = "No participant emails available"
	NoTrends           = "No significant trends identified."
	NoInsights         = "No specific insights generated based on the current data."
	NoRecommendations  = "No specific recommendations at this time."
	TargetNotSpecified = "Not specified"
)

// generatedLayout renders the report's "Generated on" line
const generatedLayout = "1/2/2006, 3:04:05 PM"

// ReportFilename is the download name of the text export for a survey.
func ReportFilename(surveyID string) string {
	return "survey-analysis-" + surveyID + ".txt"
}

// ToText renders the report as the plain-text export. Every section header
// is always written; empty sections get a placeholder line.
func ToText(report *models.AnalysisReport, result *models.SurveyResult) (string, error) {
	if report == nil {
		return "", &InvalidInputError{Field: "report", Reason: "is nil"}
	}
	if result == nil {
		result = &models.SurveyResult{}
	}

	var b strings.Builder

	writeSection(&b, "SURVEY ANALYSIS REPORT", "=====================",
		"Survey Title: "+result.SurveyTitle+"\n"+
			"Generated on: "+generatedOn(report.Timestamp))

	ov := report.Overview
	writeSection(&b, "PARTICIPATION SUMMARY", "--------------------", strings.Join([]string{
		fmt.Sprintf("Total Participants: %d", ov.TotalParticipants),
		"Target Audience: " + targetAudience(result.ParticipationNo),
		"Audience Reach: " + reach(ov.ParticipationRate),
		fmt.Sprintf("Total Questions: %d", ov.TotalQuestions),
		fmt.Sprintf("Questions with Responses: %d/%d (%d%%)",
			ov.CompletionStats.QuestionsWithResponses, ov.TotalQuestions, ov.CompletionStats.CompletionPercentage),
	}, "\n"))

	writeSection(&b, fmt.Sprintf("PARTICIPANTS (%d)", len(result.ParticipantEmails)), "-----------",
		participantList(result.ParticipantEmails))

	writeSection(&b, "KEY TRENDS", "----------", trendList(report.Trends))
	writeSection(&b, "INSIGHTS", "--------", insightList(report.Insights))

	b.WriteString("RECOMMENDATIONS\n--------------\n")
	b.WriteString(recommendationList(report.Recommendations))
	b.WriteString("\n")

	return b.String(), nil
}

// writeSection writes a header, its underline, the body and a blank line
func writeSection(b *strings.Builder, header, underline, body string) {
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(underline)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

func generatedOn(timestamp string) string {
	t, err := time.Parse(TimestampLayout, timestamp)
	if err != nil {
		return timestamp
	}
	return t.UTC().Format(generatedLayout)
}

// targetAudience shows the declared target. A zero target is divided by as 1.
func targetAudience(participationNo *int) string {
	switch {
	case participationNo == nil:
		return TargetNotSpecified
	case *participationNo == 0:
		return "0 (counted as 1)"
	}
	return strconv.Itoa(*participationNo)
}

// reach formats a rate to one decimal, rounding halves up
func reach(rate float64) string {
	return strconv.FormatFloat(math.Round(rate*10)/10, 'f', 1, 64) + "%"
}

func participantList(emails []string) string {
	if len(emails) == 0 {
		return NoParticipants
	}
	lines := make([]string, len(emails))
	for i, email := range emails {
		lines[i] = fmt.Sprintf("%d. %s", i+1, email)
	}
	return strings.Join(lines, "\n")
}

func trendList(trends []models.Trend) string {
	if len(trends) == 0 {
		return NoTrends
	}
	blocks := make([]string, len(trends))
	for i, t := range trends {
		blocks[i] = fmt.Sprintf("\n• %s\n  - Dominant Choice: %s\n  - Support: %d%%\n  - Trend Strength: %s\n",
			t.Question, t.DominantOption, t.Percentage, t.Strength)
	}
	return strings.Join(blocks, "\n")
}

func insightList(insights []models.Insight) string {
	if len(insights) == 0 {
		return NoInsights
	}
	lines := make([]string, len(insights))
	for i, in := range insights {
		lines[i] = "• " + in.Message
	}
	return strings.Join(lines, "\n")
}

func recommendationList(recs []models.Recommendation) string {
	if len(recs) == 0 {
		return NoRecommendations
	}
	blocks := make([]string, len(recs))
	for i, rec := range recs {
		blocks[i] = fmt.Sprintf("\n[%s] %s\n%s\n", strings.ToUpper(rec.Priority), rec.Action, rec.Details)
	}
	return strings.Join(blocks, "\n")
}
