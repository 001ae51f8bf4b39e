package storage

import "github.com/vedantk/helixar-go/internal/session"

// Seed sessions shown on first run so the workspace isn't empty. Their ids
// are well known: the merge below recognizes them in a stored collection
// and re-inserts only the missing ones.
const (
	SeedDesignID     = "mock-ui-design"
	SeedDevID        = "mock-dev-architect"
	SeedValidationID = "mock-validation-sprint"
)

// Seeds returns the demo sessions in display order.
func Seeds() []session.Session {
	return []session.Session{
		{
			ID:        SeedDesignID,
			Title:     "Neon UI Concept",
			UpdatedAt: 1705310090000,
			Messages: []session.Message{
				{ID: "seed-design-1", Role: session.RoleUser, Content: "I want a neon glassmorphism look for the chat panel. Dark base, magenta accent.", Timestamp: 1705310000000},
				{ID: "seed-design-2", Role: session.RoleAssistant, Content: "Start from a near-black base (#0b0b10) and reserve the magenta for interactive states only. Use a 1px translucent border with backdrop blur for the glass panels so the neon reads as light, not paint.", Timestamp: 1705310045000},
				{ID: "seed-design-3", Role: session.RoleUser, Content: "What about readability on the light theme?", Timestamp: 1705310070000},
				{ID: "seed-design-4", Role: session.RoleAssistant, Content: "Swap the glow for a soft shadow and deepen the accent two steps. Neon effects on white backgrounds wash out; contrast has to come from weight, not luminosity.", Timestamp: 1705310090000},
			},
		},
		{
			ID:        SeedDevID,
			Title:     "Full Stack Arch",
			UpdatedAt: 1705300090000,
			Messages: []session.Message{
				{ID: "seed-dev-1", Role: session.RoleUser, Content: "Sketch the architecture for the analytics sync service.", Timestamp: 1705300000000},
				{ID: "seed-dev-2", Role: session.RoleAssistant, Content: "Three pieces: a collector pulling per-platform stats on a schedule, a normalizer writing one row per post per day, and a read API serving the pre-aggregated shapes the dashboard needs. Keep the aggregation server-side so the client stays a thin adapter.", Timestamp: 1705300060000},
				{ID: "seed-dev-3", Role: session.RoleUser, Content: "Where would you put the engagement-rate calculation?", Timestamp: 1705300080000},
				{ID: "seed-dev-4", Role: session.RoleAssistant, Content: "In the normalizer, at write time. Derived metrics computed on read drift between consumers; computed once at ingest they stay consistent everywhere.", Timestamp: 1705300090000},
			},
		},
		{
			ID:        SeedValidationID,
			Title:     "Validation Sprint",
			UpdatedAt: 1705290045000,
			Messages: []session.Message{
				{ID: "seed-val-1", Role: session.RoleUser, Content: "Help me plan a one-week validation sprint for the creator dashboard idea.", Timestamp: 1705290000000},
				{ID: "seed-val-2", Role: session.RoleAssistant, Content: "Day 1-2: interview five creators about how they currently track performance. Day 3: paper-prototype the pulse chart and grade feed. Day 4-5: put the prototype in front of the same five people and count how many ask when they can have it.", Timestamp: 1705290045000},
			},
		},
	}
}

// MergeSeeds inserts any seed sessions missing from stored at the front,
// preserving both the seed order and the stored sessions untouched. This
// is onboarding glue, not a general merge.
func MergeSeeds(stored []session.Session) []session.Session {
	present := make(map[string]bool, len(stored))
	for _, sess := range stored {
		present[sess.ID] = true
	}

	var missing []session.Session
	for _, seed := range Seeds() {
		if !present[seed.ID] {
			missing = append(missing, seed)
		}
	}
	return append(missing, stored...)
}
