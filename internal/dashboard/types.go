// Package dashboard fetches the analytics backend's payload and reshapes
// it into the view models the dashboard renders.
package dashboard

import "strings"

// Platform tags a content item with its source network. Unrecognized
// backend strings map to PlatformUnknown rather than silently borrowing a
// real platform's identity.
type Platform string

const (
	PlatformTwitter  Platform = "Twitter"
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformYouTube  Platform = "YouTube"
	PlatformUnknown  Platform = "Unknown"
)

// ParsePlatform maps a backend platform string to its enum value,
// case-insensitively.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(s) {
	case "twitter":
		return PlatformTwitter
	case "linkedin":
		return PlatformLinkedIn
	case "youtube":
		return PlatformYouTube
	default:
		return PlatformUnknown
	}
}

// DailyStat is one day's impressions per platform, aggregated from the
// backend's per-event pulse records.
type DailyStat struct {
	Date     string `json:"date"`
	Twitter  int    `json:"twitter"`
	LinkedIn int    `json:"linkedin"`
	YouTube  int    `json:"youtube"`
}

// ContentItem is one post in the recent feed, UI-ready.
type ContentItem struct {
	ID             string   `json:"id"`
	Platform       Platform `json:"platform"`
	Snippet        string   `json:"snippet"`
	FullContent    string   `json:"fullContent"`
	Date           string   `json:"date"`
	Topic          string   `json:"topic"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Shares         int      `json:"shares"`
	Impressions    int      `json:"impressions"`
	EngagementRate float64  `json:"engagementRate"`
	ViralityScore  int      `json:"viralityScore"` // 0-100
	Grade          string   `json:"grade"`         // S, A, B, C, D
	URL            string   `json:"url"`
}

// Metrics are the headline numbers. Several fields are placeholders the
// backend does not provide yet; see adapt for which.
type Metrics struct {
	TotalPosts        int    `json:"totalPosts"`
	TotalEngagements  int    `json:"totalEngagements"`
	TotalLikes        int    `json:"totalLikes"`
	TotalComments     int    `json:"totalComments"`
	PostsGrowth       string `json:"postsGrowth"`
	EngagementsGrowth string `json:"engagementsGrowth"`
	AvgPostsPerWeek   int    `json:"avgPostsPerWeek"`
	Efficiency        string `json:"efficiency"`
}

// Data is the complete adapted dashboard payload. It carries no lifecycle
// of its own; every fetch recomputes it from scratch.
type Data struct {
	Posts      []ContentItem `json:"posts"`
	DailyStats []DailyStat   `json:"dailyStats"`
	Metrics    Metrics       `json:"metrics"`
	LastSynced string        `json:"lastSynced"`
}

// Raw backend payload, snake_case as the wire sends it. The pulse field
// names are capitalized on the wire.
type rawResponse struct {
	Data rawData `json:"data"`
}

type rawData struct {
	LastSynced string        `json:"last_synced"`
	Metrics    rawMetrics    `json:"metrics"`
	PulseData  []rawPulse    `json:"pulse_data"`
	RecentFeed []rawFeedItem `json:"recent_feed"`
}

type rawMetrics struct {
	PostFreq         int    `json:"post_freq"`
	TopPlatform      string `json:"top_platform"`
	TotalEngagement  int    `json:"total_engagement"`
	TotalImpressions int    `json:"total_impressions"`
}

type rawPulse struct {
	Date        string `json:"Date"`
	Engagement  int    `json:"Engagement"`
	Impressions int    `json:"Impressions"`
	Platform    string `json:"Platform"`
}

type rawFeedItem struct {
	Comments       int     `json:"comments"`
	Date           string  `json:"date"`
	Engagement     int     `json:"engagement"`
	EngagementRate float64 `json:"engagementRate"`
	Grade          string  `json:"grade"`
	Impressions    int     `json:"impressions"`
	Likes          int     `json:"likes"`
	Platform       string  `json:"platform"`
	Shares         int     `json:"shares"`
	Snippet        string  `json:"snippet"`
	ViralityScore  int     `json:"viralityScore"`
}
