// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analysis turns tallied survey results into an analysis report.

# Usage

	report, err := analysis.Analyze(result, analysis.Options{})
	if err != nil {
		// *analysis.InvalidInputError
	}
	text, err := analysis.ToText(report, result)

Analyze runs, in order: completion stats, participation rate, trends,
insights, recommendations, and stamps the report with Options.Clock
(time.Now by default). Inputs are never modified.

# Participation Modes

  - ModeRoster: roster size / participationNo * 100 (100 when no target)
  - ModeResponseCount: (totalResponses / totalQuestions) / participationNo * 100
    (0 when no target)
  - ModeAuto: roster when ParticipantEmails is non-nil, response count otherwise

Zero denominators are treated as 1. Rates are rounded to two decimals.

# Trends and Insights

A trend is reported when the first option with the highest frequency holds
more than 60% of the question's votes ("Very Strong" above 80%).

Insights, in order:

  - warning when totalResponses < 5
  - warning for each question with zero votes
  - info for each question with >= 5 votes where every option's share is
    within 0.1 of a uniform split

# Recommendation Strategies

AdminStrategy:

  - medium "Collect more responses" when totalResponses < 10
  - low "Follow up on mixed opinions" when a question with >= 5 votes has
    no option reaching a 40% share

ParticipantStrategy:

  - high "Complete remaining questions" when participation is below 100%
    and the viewer (Options.Responses) has unanswered questions

# Text Export

ToText writes the sections SURVEY ANALYSIS REPORT, PARTICIPATION SUMMARY,
PARTICIPANTS (n), KEY TRENDS, INSIGHTS and RECOMMENDATIONS in that order.
Empty sections carry a placeholder so every header is always present.

# Errors

Only malformed input fails: a nil result, a nil Questions slice, or
negative counts return *InvalidInputError. Empty surveys and zero targets
produce zero values.
*/
package analysis
