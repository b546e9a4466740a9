package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-api/internal/domain"
)

// ProvinceRepository define el contrato de persistencia para provincias.
type ProvinceRepository interface {
	Create(ctx context.Context, province domain.Province) (domain.Province, error)
	GetByID(ctx context.Context, id int64) (domain.Province, error)
	List(ctx context.Context) ([]domain.Province, error)
	Update(ctx context.Context, province domain.Province) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PgProvinceRepository implementa ProvinceRepository usando pgxpool.
type PgProvinceRepository struct {
	pool *pgxpool.Pool
}

func NewPgProvinceRepository(pool *pgxpool.Pool) *PgProvinceRepository {
	return &PgProvinceRepository{pool: pool}
}

func (r *PgProvinceRepository) Create(ctx context.Context, province domain.Province) (domain.Province, error) {
	const query = `
		INSERT INTO provinces (province_name, is_secondary)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query, province.ProvinceName, province.IsSecondary).Scan(&province.ID)
	return province, err
}

func (r *PgProvinceRepository) GetByID(ctx context.Context, id int64) (domain.Province, error) {
	const query = `SELECT id, province_name, is_secondary FROM provinces WHERE id = $1`
	var p domain.Province
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.ProvinceName, &p.IsSecondary)
	return p, err
}

func (r *PgProvinceRepository) List(ctx context.Context) ([]domain.Province, error) {
	const query = `SELECT id, province_name, is_secondary FROM provinces ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var provinces []domain.Province
	for rows.Next() {
		var p domain.Province
		if err := rows.Scan(&p.ID, &p.ProvinceName, &p.IsSecondary); err != nil {
			return nil, err
		}
		provinces = append(provinces, p)
	}
	return provinces, rows.Err()
}

func (r *PgProvinceRepository) Update(ctx context.Context, province domain.Province) (bool, error) {
	const query = `UPDATE provinces SET province_name = $2, is_secondary = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, province.ID, province.ProvinceName, province.IsSecondary)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgProvinceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM provinces WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
