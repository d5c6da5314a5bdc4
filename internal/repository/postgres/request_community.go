package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type requestCommunityRepository struct {
	db *sql.DB
}

func NewRequestCommunityRepository(db *sql.DB) repository.RequestCommunityRepository {
	return &requestCommunityRepository{db: db}
}

const requestCommunityColumns = `id, name, slug, community_order, user_id, approved_by_id, parent_community_id, location, email, website, status, date_created`

func (r *requestCommunityRepository) Create(ctx context.Context, req *domain.RequestCommunity) error {
	query := `INSERT INTO request_communities (name, slug, community_order, user_id, parent_community_id, location, email, website, status, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Slug, req.Order, req.RequesterID,
		req.ParentID, req.Location, req.Email, req.Website, domain.RequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return translateErr(err, "slug")
	}
	req.Status = domain.RequestStatusPending
	return nil
}

func (r *requestCommunityRepository) GetByID(ctx context.Context, id int32) (*domain.RequestCommunity, error) {
	req := &domain.RequestCommunity{}
	query := `SELECT ` + requestCommunityColumns + ` FROM request_communities WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.Name, &req.Slug, &req.Order,
		&req.RequesterID, &req.ApprovedByID, &req.ParentID, &req.Location, &req.Email, &req.Website,
		&req.Status, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *requestCommunityRepository) ListPending(ctx context.Context) ([]domain.RequestCommunity, error) {
	query := `SELECT ` + requestCommunityColumns + ` FROM request_communities WHERE status = $1 ORDER BY date_created`
	rows, err := r.db.QueryContext(ctx, query, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RequestCommunity
	for rows.Next() {
		var req domain.RequestCommunity
		if err := rows.Scan(&req.ID, &req.Name, &req.Slug, &req.Order, &req.RequesterID,
			&req.ApprovedByID, &req.ParentID, &req.Location, &req.Email, &req.Website,
			&req.Status, &req.DateCreated); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve performs the terminal transition and materializes the community in
// one transaction. The guarded UPDATE serializes concurrent approvers: the
// loser matches zero rows and gets ErrInvalidTransition.
func (r *requestCommunityRepository) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) (*domain.Community, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	req := &domain.RequestCommunity{}
	query := `UPDATE request_communities SET status = $1, approved_by_id = $2
	          WHERE id = $3 AND status = $4
	          RETURNING name, slug, community_order, user_id, parent_community_id, location, email, website`
	err = tx.QueryRowContext(ctx, query, domain.RequestStatusApproved, approverID, id, domain.RequestStatusPending).
		Scan(&req.Name, &req.Slug, &req.Order, &req.RequesterID, &req.ParentID, &req.Location, &req.Email, &req.Website)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, translateErr(err, "")
	}

	community := &domain.Community{
		Name:     req.Name,
		Slug:     req.Slug,
		Order:    req.Order,
		AdminID:  req.RequesterID,
		ParentID: req.ParentID,
		Location: req.Location,
		Email:    req.Email,
		Website:  req.Website,
	}
	insert := `INSERT INTO communities (name, slug, community_order, admin_id, parent_community_id, location, email, website, date_created)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, community.Name, community.Slug, community.Order,
		community.AdminID, community.ParentID, community.Location, community.Email, community.Website, time.Now()).
		Scan(&community.ID)
	if err != nil {
		return nil, translateErr(err, "slug")
	}

	// The new community's admin is also its first member.
	member := `INSERT INTO community_members (community_id, user_id, joined_on)
	           VALUES ($1, $2, $3) ON CONFLICT (community_id, user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, member, community.ID, community.AdminID, time.Now()); err != nil {
		return nil, err
	}

	if err := appendEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to append outbox event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return community, nil
}

func (r *requestCommunityRepository) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	return rejectRequest(ctx, r.db, "request_communities", id, event)
}

// rejectRequest stamps the terminal REJECTED status with the same guarded
// UPDATE discipline the approvals use.
func rejectRequest(ctx context.Context, db *sql.DB, table string, id int32, event *domain.OutboxEvent) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2 AND status = $3`, table)
	res, err := tx.ExecContext(ctx, query, domain.RequestStatusRejected, id, domain.RequestStatusPending)
	if err != nil {
		return translateErr(err, "")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}
	if err := appendEventTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return tx.Commit()
}
