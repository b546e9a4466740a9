package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-api/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	SelectProvince(ctx context.Context, id, provinceID int64, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

const userColumns = `
	id, email, phone_number, username, first_name, last_name,
	hashed_password, roles, selected_province_id,
	register_date, updated_date, last_login_date
`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
		INSERT INTO users (
			email, phone_number, username, first_name, last_name,
			hashed_password, roles, register_date, updated_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.PhoneNumber,
		user.Username,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		user.Roles,
		user.RegisterDate,
		user.UpdatedDate,
	).Scan(&user.ID)
	return user, err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *PgUserRepository) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.scanUser(ctx, query, phone)
}

func (r *PgUserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PhoneNumber, &u.Username, &u.FirstName, &u.LastName,
			&u.HashedPassword, &u.Roles, &u.SelectedProvinceID,
			&u.RegisterDate, &u.UpdatedDate, &u.LastLoginDate,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) Update(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET email = $2, phone_number = $3, username = $4, first_name = $5,
		    last_name = $6, roles = $7, updated_date = $8
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PhoneNumber,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Roles,
		user.UpdatedDate,
	)
	return err
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error {
	const query = `UPDATE users SET hashed_password = $2, updated_date = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, hashedPassword, updatedAt)
	return err
}

func (r *PgUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE users SET last_login_date = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}

func (r *PgUserRepository) SelectProvince(ctx context.Context, id, provinceID int64, updatedAt time.Time) error {
	const query = `UPDATE users SET selected_province_id = $2, updated_date = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, provinceID, updatedAt)
	return err
}

func (r *PgUserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgUserRepository) scanUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PhoneNumber, &u.Username, &u.FirstName, &u.LastName,
		&u.HashedPassword, &u.Roles, &u.SelectedProvinceID,
		&u.RegisterDate, &u.UpdatedDate, &u.LastLoginDate,
	)
	return u, err
}
