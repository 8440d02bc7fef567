package store

import (
	"context"

	"matricare-api/internal/model"
)

func (s *Store) CreatePost(ctx context.Context, p *model.Post) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO posts (id, author_id, content, categories) VALUES ($1,$2,$3,$4)`,
		p.ID, p.AuthorID, p.Content, p.Categories,
	)
	return err
}

func (s *Store) CreateComment(ctx context.Context, c *model.Comment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO post_comments (id, post_id, author_id, content) VALUES ($1,$2,$3,$4)`,
		c.ID, c.PostID, c.AuthorID, c.Content,
	)
	return err
}

// ListFeed returns every post with its comment texts, the raw input of the
// dashboard aggregation.
func (s *Store) ListFeed(ctx context.Context) ([]model.FeedItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.categories, p.content,
		        COALESCE(array_agg(c.content ORDER BY c.created_at)
		                 FILTER (WHERE c.id IS NOT NULL), '{}')
		 FROM posts p
		 LEFT JOIN post_comments c ON c.post_id = p.id
		 GROUP BY p.id
		 ORDER BY p.created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FeedItem
	for rows.Next() {
		var it model.FeedItem
		if err := rows.Scan(&it.Categories, &it.Content, &it.Comments); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
