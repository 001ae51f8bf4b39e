package dashboard

import (
	"fmt"
	"math"
	"sort"
)

// snippetLen is how much of a post body the list view shows.
const snippetLen = 50

// adapt transforms the raw backend payload into the view model. It is a
// pure function; all network handling lives in the client.
func adapt(raw rawResponse) Data {
	return Data{
		Posts:      adaptFeed(raw.Data.RecentFeed),
		DailyStats: adaptPulse(raw.Data.PulseData),
		Metrics:    adaptMetrics(raw.Data.Metrics),
		LastSynced: raw.Data.LastSynced,
	}
}

// adaptPulse groups the flat per-event pulse records into one DailyStat
// per date, summing impressions into the column matching the event's
// platform. Events for unrecognized platforms are dropped. Output is
// sorted ascending by date.
func adaptPulse(pulse []rawPulse) []DailyStat {
	byDate := make(map[string]*DailyStat)
	for _, item := range pulse {
		stat, ok := byDate[item.Date]
		if !ok {
			stat = &DailyStat{Date: item.Date}
			byDate[item.Date] = stat
		}
		switch ParsePlatform(item.Platform) {
		case PlatformTwitter:
			stat.Twitter += item.Impressions
		case PlatformLinkedIn:
			stat.LinkedIn += item.Impressions
		case PlatformYouTube:
			stat.YouTube += item.Impressions
		}
	}

	stats := make([]DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		stats = append(stats, *stat)
	}
	// ISO dates sort correctly as strings.
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// adaptFeed maps recent_feed records 1:1 into ContentItems. The list-view
// snippet is the truncated body; the full body is kept alongside. Date,
// topic, and url are placeholders until the backend provides them.
func adaptFeed(feed []rawFeedItem) []ContentItem {
	posts := make([]ContentItem, 0, len(feed))
	for i, item := range feed {
		posts = append(posts, ContentItem{
			ID:             fmt.Sprintf("post-%d", i),
			Platform:       ParsePlatform(item.Platform),
			Snippet:        truncateSnippet(item.Snippet),
			FullContent:    item.Snippet,
			Date:           "2d",
			Topic:          "Tech",
			Likes:          item.Likes,
			Comments:       item.Comments,
			Shares:         item.Shares,
			Impressions:    item.Impressions,
			EngagementRate: item.EngagementRate,
			ViralityScore:  item.ViralityScore,
			Grade:          item.Grade,
			URL:            "#",
		})
	}
	return posts
}

// adaptMetrics renames the backend's metric fields. TotalLikes proxies
// total impressions and TotalComments, the growth strings, and Efficiency
// are placeholder values the backend does not provide yet.
func adaptMetrics(m rawMetrics) Metrics {
	return Metrics{
		TotalPosts:        m.PostFreq,
		TotalEngagements:  m.TotalEngagement,
		TotalLikes:        m.TotalImpressions,
		TotalComments:     0,
		PostsGrowth:       "0%",
		EngagementsGrowth: "0%",
		AvgPostsPerWeek:   int(math.Round(float64(m.PostFreq) / 4)),
		Efficiency:        "HIGH",
	}
}

// truncateSnippet keeps the first snippetLen runes and always appends the
// ellipsis, matching the list view's rendering.
func truncateSnippet(s string) string {
	runes := []rune(s)
	if len(runes) > snippetLen {
		runes = runes[:snippetLen]
	}
	return string(runes) + "..."
}
