package analytics

import "matricare-api/internal/model"

// Categories is the closed set the BellyTalk dashboard reports on. Posts
// tagged with anything else are ignored.
var Categories = []string{
	"Health & Wellness",
	"Finance & Budgeting",
	"Parenting & Family",
	"Baby’s Essentials",
	"Exercise & Fitness",
	"Labor & Delivery",
}

type CategoryStats struct {
	Name        string `json:"name"`
	Posts       int    `json:"posts"`
	Discussions int    `json:"discussions"`
	Engagement  int    `json:"engagement"`

	// Raw content, kept for summarization; not part of the overview payload.
	PostContent  []string   `json:"-"`
	PostComments [][]string `json:"-"`
}

// Aggregate buckets the feed into per-category stats. Every fixed category is
// present in the result, zeroed when nothing matched. Engagement is posts
// plus discussion replies. A post tagged with several categories counts once
// in each.
func Aggregate(items []model.FeedItem) []CategoryStats {
	byName := make(map[string]*CategoryStats, len(Categories))
	out := make([]CategoryStats, len(Categories))
	for i, name := range Categories {
		out[i] = CategoryStats{Name: name}
		byName[name] = &out[i]
	}

	for _, it := range items {
		for _, cat := range it.Categories {
			st, ok := byName[cat]
			if !ok {
				continue
			}
			st.Posts++
			st.Discussions += len(it.Comments)
			st.Engagement += 1 + len(it.Comments)
			st.PostContent = append(st.PostContent, it.Content)
			st.PostComments = append(st.PostComments, it.Comments)
		}
	}
	return out
}
