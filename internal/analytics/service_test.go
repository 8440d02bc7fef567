package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"matricare-api/internal/apperr"
	"matricare-api/internal/model"
	"matricare-api/internal/summarizer"
)

type fakePosts struct {
	items []model.FeedItem
	calls int
}

func (f *fakePosts) ListFeed(context.Context) ([]model.FeedItem, error) {
	f.calls++
	return f.items, nil
}

type fakeArticles struct {
	stored  map[string]*model.Article
	upserts int
}

func (f *fakeArticles) ArticleByCategory(_ context.Context, category string) (*model.Article, error) {
	a, ok := f.stored[category]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeArticles) UpsertArticle(_ context.Context, a *model.Article) error {
	f.upserts++
	if f.stored == nil {
		f.stored = map[string]*model.Article{}
	}
	f.stored[a.Category] = a
	return nil
}

type fakeSummarizer struct {
	calls   int
	summary string
}

func (f *fakeSummarizer) Summarize(context.Context, summarizer.Request) (string, error) {
	f.calls++
	return f.summary, nil
}

// two posts with one comment each: engagement 3 in Health & Wellness
func activeFeed() []model.FeedItem {
	return []model.FeedItem{
		{Categories: []string{"Health & Wellness"}, Content: "post one", Comments: []string{"reply"}},
		{Categories: []string{"Health & Wellness"}, Content: "post two"},
	}
}

func newService(t *testing.T, posts *fakePosts, arts *fakeArticles, sum *fakeSummarizer, cache *redis.Client) *Service {
	t.Helper()
	return New(posts, arts, sum, cache, zaptest.NewLogger(t))
}

func TestCategoryReportMissingCategory(t *testing.T) {
	svc := newService(t, &fakePosts{}, &fakeArticles{}, &fakeSummarizer{}, nil)

	_, err := svc.CategoryReport(context.Background(), "")
	assert.Equal(t, 400, apperr.StatusOf(err))

	_, err = svc.CategoryReport(context.Background(), "Astrology")
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestCategoryReportEngagementGate(t *testing.T) {
	posts := &fakePosts{items: []model.FeedItem{
		{Categories: []string{"Health & Wellness"}, Content: "lonely post"},
	}}
	sum := &fakeSummarizer{summary: "unused"}
	svc := newService(t, posts, &fakeArticles{}, sum, nil)

	_, err := svc.CategoryReport(context.Background(), "Health & Wellness")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))
	assert.EqualError(t, err, "Engagement requirements not reached for this action.")
	assert.Zero(t, sum.calls, "gated categories never reach the summarizer")
}

func TestCategoryReportGeneratesAndStores(t *testing.T) {
	posts := &fakePosts{items: activeFeed()}
	arts := &fakeArticles{}
	sum := &fakeSummarizer{summary: "Wellness Roundup\nEverything our community discussed this week."}
	svc := newService(t, posts, arts, sum, nil)

	art, err := svc.CategoryReport(context.Background(), "Health & Wellness")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.calls)
	assert.Equal(t, 1, arts.upserts)
	assert.Equal(t, "Health & Wellness", art.Category)
	assert.Equal(t, 3, art.Engagement)
	assert.Equal(t, "Wellness Roundup", art.Title)
	assert.Equal(t, "Everything our community discussed this week.", art.Content)
}

func TestCategoryReportReusesStored(t *testing.T) {
	posts := &fakePosts{items: activeFeed()}
	arts := &fakeArticles{stored: map[string]*model.Article{
		"Health & Wellness": {ID: "art-1", Category: "Health & Wellness", Engagement: 3, Title: "Old Title"},
	}}
	sum := &fakeSummarizer{summary: "should not be called"}
	svc := newService(t, posts, arts, sum, nil)

	art, err := svc.CategoryReport(context.Background(), "Health & Wellness")
	require.NoError(t, err)
	assert.Equal(t, "art-1", art.ID, "stored article reused while engagement matches")
	assert.Zero(t, sum.calls)
	assert.Zero(t, arts.upserts)
}

func TestCategoryReportRegeneratesOnEngagementChange(t *testing.T) {
	posts := &fakePosts{items: activeFeed()}
	arts := &fakeArticles{stored: map[string]*model.Article{
		"Health & Wellness": {ID: "art-1", Category: "Health & Wellness", Engagement: 2, Title: "Stale"},
	}}
	sum := &fakeSummarizer{summary: "Fresh Title\nFresh body."}
	svc := newService(t, posts, arts, sum, nil)

	art, err := svc.CategoryReport(context.Background(), "Health & Wellness")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.calls, "exactly one summarization per engagement change")
	assert.Equal(t, 1, arts.upserts)
	assert.Equal(t, "Fresh Title", art.Title)
	assert.Equal(t, 3, art.Engagement)
	assert.NotEqual(t, "art-1", art.ID)

	// second read at the same engagement reuses the replacement
	again, err := svc.CategoryReport(context.Background(), "Health & Wellness")
	require.NoError(t, err)
	assert.Equal(t, art.ID, again.ID)
	assert.Equal(t, 1, sum.calls)
}

func TestOverviewWithoutCache(t *testing.T) {
	posts := &fakePosts{items: activeFeed()}
	svc := newService(t, posts, &fakeArticles{}, &fakeSummarizer{}, nil)

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, len(Categories))
	assert.Equal(t, 3, statsByName(stats)["Health & Wellness"].Engagement)

	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, posts.calls, "no cache means every read hits the store")
}

func TestOverviewCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	posts := &fakePosts{items: activeFeed()}
	svc := newService(t, posts, &fakeArticles{}, &fakeSummarizer{}, cache)

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)
	second, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, posts.calls, "second read served from redis")

	mr.FastForward(overviewCacheTTL + time.Second)
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, posts.calls, "expired entry recomputed")
}
