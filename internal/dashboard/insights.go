package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vedantk/helixar-go/internal/llm"
	"github.com/vedantk/helixar-go/internal/logger"
)

const (
	insightsFailure  = "Could not complete analysis. Please check your API configuration."
	insightsFallback = "Unable to generate insights at this time."

	maxInsightPosts = 5
	maxInsightDays  = 3
)

// AnalyzePerformance asks the model for a short strategy readout over the
// adapted dashboard data. It never returns an error; failures surface as
// canned insight text so the panel always has something to show.
func AnalyzePerformance(ctx context.Context, client llm.Client, data Data) string {
	prompt, err := buildInsightsPrompt(data)
	if err != nil {
		logger.L.Error("building insights prompt", "error", err)
		return insightsFailure
	}

	text, err := client.Complete(ctx, prompt)
	if err != nil {
		logger.L.Error("generating insights", "error", err)
		return insightsFailure
	}
	if text == "" {
		return insightsFallback
	}
	return text
}

// buildInsightsPrompt summarizes the most recent posts and daily stats as
// JSON inside the analyst prompt. Only a slice of each goes in to keep the
// prompt small.
func buildInsightsPrompt(data Data) (string, error) {
	posts := data.Posts
	if len(posts) > maxInsightPosts {
		posts = posts[:maxInsightPosts]
	}
	stats := data.DailyStats
	if len(stats) > maxInsightDays {
		stats = stats[len(stats)-maxInsightDays:]
	}

	postsJSON, err := json.Marshal(posts)
	if err != nil {
		return "", fmt.Errorf("marshal posts: %w", err)
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal daily stats: %w", err)
	}

	return fmt.Sprintf(`You are a senior social media strategist. Analyze the following performance data and give three concise, actionable recommendations.

Recent posts:
%s

Recent daily impressions:
%s

Keep the answer under 150 words.`, postsJSON, statsJSON), nil
}
