// ABOUTME: Content and category store methods on SQLiteStore
// ABOUTME: These are the records the dependency guard counts before an agent delete

package store

import (
	"context"
	"fmt"
)

// CreateContent inserts a knowledge item for an agent
func (s *SQLiteStore) CreateContent(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO contents (id, agent_id, title, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.AgentID,
		c.Title,
		c.Body,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting content: %w", err)
	}

	return nil
}

// ListContentsByAgent returns all contents referencing an agent
func (s *SQLiteStore) ListContentsByAgent(ctx context.Context, agentID string) ([]*Content, error) {
	query := `
		SELECT id, agent_id, title, body, created_at
		FROM contents WHERE agent_id = ?
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing contents: %w", err)
	}
	defer rows.Close()

	contents := []*Content{}
	for rows.Next() {
		var c Content
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.AgentID, &c.Title, &c.Body, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning content: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, err
		}
		contents = append(contents, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contents: %w", err)
	}

	return contents, nil
}

// CreateCategory inserts a content category for an agent
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, agent_id, name, deleted, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.AgentID,
		c.Name,
		c.Deleted,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

// ListCategoriesByAgent returns all categories referencing an agent,
// including deleted ones. The dependency guard skips deleted categories
// itself.
func (s *SQLiteStore) ListCategoriesByAgent(ctx context.Context, agentID string) ([]*Category, error) {
	query := `
		SELECT id, agent_id, name, deleted, created_at
		FROM categories WHERE agent_id = ?
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		var createdAtStr string
		if err := rows.Scan(&c.ID, &c.AgentID, &c.Name, &c.Deleted, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}
