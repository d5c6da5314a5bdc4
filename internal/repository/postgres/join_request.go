package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type joinRequestRepository struct {
	db *sql.DB
}

func NewJoinRequestRepository(db *sql.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, user_id, community_id, status, approved_by_id, date_created`

func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `INSERT INTO join_requests (user_id, community_id, status, date_created)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.UserID, req.CommunityID,
		domain.RequestStatusPending, time.Now()).Scan(&req.ID)
	if err != nil {
		return translateErr(err, "")
	}
	req.Status = domain.RequestStatusPending
	return nil
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserID, &req.CommunityID,
		&req.Status, &req.ApprovedByID, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *joinRequestRepository) GetPending(ctx context.Context, userID, communityID int32) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests
	          WHERE user_id = $1 AND community_id = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, userID, communityID, domain.RequestStatusPending).
		Scan(&req.ID, &req.UserID, &req.CommunityID, &req.Status, &req.ApprovedByID, &req.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return req, nil
}

func (r *joinRequestRepository) ListByCommunity(ctx context.Context, communityID int32) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE community_id = $1 ORDER BY date_created`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.CommunityID, &req.Status,
			&req.ApprovedByID, &req.DateCreated); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Approve stamps the request and inserts the membership row in one
// transaction. Concurrent approvers are serialized by the guarded UPDATE:
// the second one matches no pending row and fails with ErrInvalidTransition,
// so the member is added exactly once.
func (r *joinRequestRepository) Approve(ctx context.Context, id, approverID int32, event *domain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID, communityID int32
	query := `UPDATE join_requests SET status = $1, approved_by_id = $2
	          WHERE id = $3 AND status = $4
	          RETURNING user_id, community_id`
	err = tx.QueryRowContext(ctx, query, domain.RequestStatusApproved, approverID, id, domain.RequestStatusPending).
		Scan(&userID, &communityID)
	if err == sql.ErrNoRows {
		return domain.ErrInvalidTransition
	}
	if err != nil {
		return translateErr(err, "")
	}

	member := `INSERT INTO community_members (community_id, user_id, joined_on)
	           VALUES ($1, $2, $3) ON CONFLICT (community_id, user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, member, communityID, userID, time.Now()); err != nil {
		return err
	}

	if err := appendEventTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return tx.Commit()
}

func (r *joinRequestRepository) Reject(ctx context.Context, id int32, event *domain.OutboxEvent) error {
	return rejectRequest(ctx, r.db, "join_requests", id, event)
}
