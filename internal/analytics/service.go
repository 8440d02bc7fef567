package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"matricare-api/internal/apperr"
	"matricare-api/internal/model"
	"matricare-api/internal/summarizer"
)

// minEngagement gates report generation; below it a category has too little
// activity to summarize.
const minEngagement = 2

const (
	overviewCacheKey = "bellytalk:overview"
	overviewCacheTTL = time.Minute
)

type PostStore interface {
	ListFeed(ctx context.Context) ([]model.FeedItem, error)
}

type ArticleStore interface {
	ArticleByCategory(ctx context.Context, category string) (*model.Article, error)
	UpsertArticle(ctx context.Context, a *model.Article) error
}

type Summarizer interface {
	Summarize(ctx context.Context, req summarizer.Request) (string, error)
}

type Service struct {
	posts     PostStore
	articles  ArticleStore
	summarize Summarizer
	cache     *redis.Client
	log       *zap.Logger
}

// New builds the analytics service. cache may be nil; the overview then hits
// the posts store on every read.
func New(posts PostStore, articles ArticleStore, sum Summarizer, cache *redis.Client, log *zap.Logger) *Service {
	return &Service{posts: posts, articles: articles, summarize: sum, cache: cache, log: log}
}

// Overview returns per-category stats for the dashboard. The result is held
// in Redis for a short TTL since the dashboard is read-mostly.
func (s *Service) Overview(ctx context.Context) ([]CategoryStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, overviewCacheKey).Result(); err == nil {
			var stats []CategoryStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.freshStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if b, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, overviewCacheKey, b, overviewCacheTTL).Err(); err != nil {
				s.log.Warn("overview cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *Service) freshStats(ctx context.Context) ([]CategoryStats, error) {
	items, err := s.posts.ListFeed(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(items), nil
}

// CategoryReport returns the summary article for a category, generating and
// storing one when none exists for the current engagement value. The stored
// article is reused verbatim while its engagement matches; a change in
// engagement triggers exactly one new summarization call whose result
// replaces the stored article atomically (upsert keyed by category).
func (s *Service) CategoryReport(ctx context.Context, category string) (*model.Article, error) {
	if category == "" {
		return nil, apperr.BadRequest("Category identifier not found")
	}

	// report gating always works from fresh stats, not the overview cache
	stats, err := s.freshStats(ctx)
	if err != nil {
		return nil, err
	}
	var st *CategoryStats
	for i := range stats {
		if stats[i].Name == category {
			st = &stats[i]
			break
		}
	}
	if st == nil {
		return nil, apperr.NotFound("Category not found")
	}
	if st.Engagement < minEngagement {
		return nil, apperr.BadRequest("Engagement requirements not reached for this action.")
	}

	stored, err := s.articles.ArticleByCategory(ctx, category)
	if err == nil && stored.Engagement == st.Engagement {
		return stored, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	req := summarizer.Request{Category: category}
	for i, content := range st.PostContent {
		req.Posts = append(req.Posts, summarizer.Post{
			Content:  content,
			Comments: st.PostComments[i],
		})
	}

	summary, err := s.summarize.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}

	// first line is the title, the rest is the body
	title, content, _ := strings.Cut(summary, "\n")
	art := &model.Article{
		ID:         uuid.New().String(),
		Category:   category,
		Engagement: st.Engagement,
		Title:      title,
		FullTitle:  title,
		Content:    content,
	}
	if err := s.articles.UpsertArticle(ctx, art); err != nil {
		return nil, err
	}

	s.log.Info("category report generated",
		zap.String("category", category),
		zap.Int("engagement", st.Engagement))
	return art, nil
}
