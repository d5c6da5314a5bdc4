package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type communityRepository struct {
	db *sql.DB
}

func NewCommunityRepository(db *sql.DB) repository.CommunityRepository {
	return &communityRepository{db: db}
}

const communityColumns = `id, name, slug, community_order, admin_id, parent_community_id, location, email, website, facebook, twitter, date_created`

func (r *communityRepository) Create(ctx context.Context, c *domain.Community) error {
	query := `INSERT INTO communities (name, slug, community_order, admin_id, parent_community_id, location, email, website, facebook, twitter, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.Order, c.AdminID, c.ParentID,
		c.Location, c.Email, c.Website, c.Facebook, c.Twitter, time.Now()).Scan(&c.ID)
	return translateErr(err, "slug")
}

func (r *communityRepository) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	return r.getOne(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = $1`, id)
}

func (r *communityRepository) GetBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	return r.getOne(ctx, `SELECT `+communityColumns+` FROM communities WHERE slug = $1`, slug)
}

func (r *communityRepository) getOne(ctx context.Context, query string, arg any) (*domain.Community, error) {
	c := &domain.Community{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Slug, &c.Order,
		&c.AdminID, &c.ParentID, &c.Location, &c.Email, &c.Website, &c.Facebook, &c.Twitter, &c.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return c, nil
}

func (r *communityRepository) List(ctx context.Context) ([]domain.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities ORDER BY community_order, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var c domain.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Order, &c.AdminID, &c.ParentID,
			&c.Location, &c.Email, &c.Website, &c.Facebook, &c.Twitter, &c.DateCreated); err != nil {
			return nil, err
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

func (r *communityRepository) Update(ctx context.Context, c *domain.Community) error {
	query := `UPDATE communities SET name = $1, slug = $2, community_order = $3, admin_id = $4,
	          parent_community_id = $5, location = $6, email = $7, website = $8, facebook = $9, twitter = $10
	          WHERE id = $11`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, c.Order, c.AdminID, c.ParentID,
		c.Location, c.Email, c.Website, c.Facebook, c.Twitter, c.ID)
	return translateErr(err, "slug")
}

func (r *communityRepository) AddMember(ctx context.Context, communityID, userID int32) error {
	query := `INSERT INTO community_members (community_id, user_id, joined_on)
	          VALUES ($1, $2, $3) ON CONFLICT (community_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, communityID, userID, time.Now())
	return translateErr(err, "")
}

func (r *communityRepository) RemoveMember(ctx context.Context, communityID, userID int32) error {
	query := `DELETE FROM community_members WHERE community_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, communityID, userID)
	return translateErr(err, "")
}

func (r *communityRepository) ListMembers(ctx context.Context, communityID int32) ([]domain.SystersUser, error) {
	query := `SELECT u.` + "id, u.user_id, u.username, u.email, u.country, u.blog, u.homepage, u.is_staff, u.date_created" + `
	          FROM systers_users u
	          JOIN community_members m ON m.user_id = u.id
	          WHERE m.community_id = $1
	          ORDER BY u.username`
	return scanUsers(r.db.QueryContext(ctx, query, communityID))
}

func (r *communityRepository) IsMember(ctx context.Context, communityID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM community_members WHERE community_id = $1 AND user_id = $2)`
	err := r.db.QueryRowContext(ctx, query, communityID, userID).Scan(&exists)
	return exists, err
}

func scanUsers(rows *sql.Rows, err error) ([]domain.SystersUser, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.SystersUser
	for rows.Next() {
		var u domain.SystersUser
		if err := rows.Scan(&u.ID, &u.UserID, &u.Username, &u.Email, &u.Country,
			&u.Blog, &u.Homepage, &u.IsStaff, &u.DateCreated); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
