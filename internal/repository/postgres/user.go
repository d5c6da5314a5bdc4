package postgres

import (
	"context"
	"database/sql"
	"time"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, user_id, username, email, password_hash, country, blog, homepage, is_staff, date_created`

func (r *userRepository) Create(ctx context.Context, user *domain.SystersUser) error {
	query := `INSERT INTO systers_users (user_id, username, email, password_hash, country, blog, homepage, is_staff, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.UserID, user.Username, user.Email, user.PasswordHash,
		user.Country, user.Blog, user.Homepage, user.IsStaff, time.Now()).Scan(&user.ID)
	return translateErr(err, "username")
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.SystersUser, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM systers_users WHERE id = $1`, id)
}

func (r *userRepository) GetByUserID(ctx context.Context, userID int32) (*domain.SystersUser, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM systers_users WHERE user_id = $1`, userID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.SystersUser, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM systers_users WHERE email = $1`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.SystersUser, error) {
	user := &domain.SystersUser{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.UserID, &user.Username,
		&user.Email, &user.PasswordHash, &user.Country, &user.Blog, &user.Homepage,
		&user.IsStaff, &user.DateCreated)
	if err != nil {
		return nil, translateErr(err, "")
	}
	return user, nil
}

func (r *userRepository) ListStaff(ctx context.Context) ([]domain.SystersUser, error) {
	query := `SELECT id, user_id, username, email, country, blog, homepage, is_staff, date_created
	          FROM systers_users WHERE is_staff = TRUE ORDER BY username`
	return scanUsers(r.db.QueryContext(ctx, query))
}

func (r *userRepository) Update(ctx context.Context, user *domain.SystersUser) error {
	query := `UPDATE systers_users SET username = $1, email = $2, country = $3, blog = $4, homepage = $5, is_staff = $6
	          WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.Country,
		user.Blog, user.Homepage, user.IsStaff, user.ID)
	return translateErr(err, "username")
}
