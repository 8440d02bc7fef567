package store

import (
	"context"

	"matricare-api/internal/model"
)

func (s *Store) ArticleByCategory(ctx context.Context, category string) (*model.Article, error) {
	a := &model.Article{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, category, engagement, title, full_title, content, created_at, updated_at
		 FROM articles WHERE category = $1`, category,
	).Scan(&a.ID, &a.Category, &a.Engagement, &a.Title, &a.FullTitle,
		&a.Content, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpsertArticle stores the summary for a category in one statement, replacing
// any previous one. Concurrent report requests for the same category cannot
// leave two rows behind; last write wins.
func (s *Store) UpsertArticle(ctx context.Context, a *model.Article) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO articles (id, category, engagement, title, full_title, content)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (category) DO UPDATE
		 SET engagement = EXCLUDED.engagement,
		     title      = EXCLUDED.title,
		     full_title = EXCLUDED.full_title,
		     content    = EXCLUDED.content,
		     updated_at = NOW()`,
		a.ID, a.Category, a.Engagement, a.Title, a.FullTitle, a.Content,
	)
	return err
}
