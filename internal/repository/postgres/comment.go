package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, author_id, body, is_approved, target_kind, target_id, date_created`

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (author_id, body, is_approved, target_kind, target_id, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.AuthorID, c.Body, c.IsApproved,
		c.TargetKind, c.TargetID, time.Now()).Scan(&c.ID)
	return translateErr(err, "")
}

func (r *commentRepository) GetByID(ctx context.Context, id int32) (*domain.Comment, error) {
	c := &domain.Comment{}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.AuthorID, &c.Body,
		&c.IsApproved, &c.TargetKind, &c.TargetID, &c.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return c, nil
}

func (r *commentRepository) ListByTarget(ctx context.Context, kind domain.CommentTargetKind, targetID int32, approvedOnly bool) ([]domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE target_kind = $1 AND target_id = $2`
	args := []any{kind, targetID}
	if approvedOnly {
		query += ` AND is_approved = TRUE`
	}
	query += ` ORDER BY date_created`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Body, &c.IsApproved, &c.TargetKind,
			&c.TargetID, &c.DateCreated); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) SetApproved(ctx context.Context, id int32, approved bool) error {
	query := `UPDATE comments SET is_approved = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, approved, id)
	if err != nil {
		return translateErr(err, "")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int32) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return translateErr(err, "")
}
