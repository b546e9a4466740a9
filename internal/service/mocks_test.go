package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"travel-api/internal/domain"
)

type mockUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range m.users {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (domain.User, error) {
	for _, user := range m.users {
		if user.PhoneNumber == phone {
			return user, nil
		}
	}
	return domain.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := m.users[user.ID]
	user.HashedPassword = stored.HashedPassword
	user.RegisterDate = stored.RegisterDate
	user.LastLoginDate = stored.LastLoginDate
	user.SelectedProvinceID = stored.SelectedProvinceID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id int64, hashedPassword string, updatedAt time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.HashedPassword = hashedPassword
	user.UpdatedDate = updatedAt
	m.users[id] = user
	return nil
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.LastLoginDate = &at
	m.users[id] = user
	return nil
}

func (m *mockUserRepo) SelectProvince(_ context.Context, id, provinceID int64, updatedAt time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.SelectedProvinceID = &provinceID
	user.UpdatedDate = updatedAt
	m.users[id] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

type mockProvinceRepo struct {
	nextID    int64
	provinces map[int64]domain.Province
	getCalls  int
}

func newMockProvinceRepo() *mockProvinceRepo {
	return &mockProvinceRepo{provinces: make(map[int64]domain.Province)}
}

func (m *mockProvinceRepo) Create(_ context.Context, province domain.Province) (domain.Province, error) {
	m.nextID++
	province.ID = m.nextID
	m.provinces[province.ID] = province
	return province, nil
}

func (m *mockProvinceRepo) GetByID(_ context.Context, id int64) (domain.Province, error) {
	m.getCalls++
	province, ok := m.provinces[id]
	if !ok {
		return domain.Province{}, pgx.ErrNoRows
	}
	return province, nil
}

func (m *mockProvinceRepo) List(_ context.Context) ([]domain.Province, error) {
	provinces := make([]domain.Province, 0, len(m.provinces))
	for _, province := range m.provinces {
		provinces = append(provinces, province)
	}
	return provinces, nil
}

func (m *mockProvinceRepo) Update(_ context.Context, province domain.Province) (bool, error) {
	if _, ok := m.provinces[province.ID]; !ok {
		return false, nil
	}
	m.provinces[province.ID] = province
	return true, nil
}

func (m *mockProvinceRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.provinces[id]; !ok {
		return false, nil
	}
	delete(m.provinces, id)
	return true, nil
}

type mockEmailSender struct {
	lastTo       string
	lastPassword string
	calls        int
	err          error
}

func (m *mockEmailSender) SendTemporaryPassword(_ context.Context, toEmail string, tempPassword string) error {
	m.calls++
	m.lastTo = toEmail
	m.lastPassword = tempPassword
	return m.err
}
