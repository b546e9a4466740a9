package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-api/internal/domain"
	"travel-api/internal/email"
	"travel-api/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	provinces   *ProvinceService
	emailSender email.Sender
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, provinces *ProvinceService, emailSender email.Sender) *UserService {
	return &UserService{
		logger:      logger,
		users:       users,
		provinces:   provinces,
		emailSender: emailSender,
	}
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyRegistered  = errors.New("email or phone already registered")
	ErrNoProvinceSelected = errors.New("no province selected")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrWeakPhoneNumber    = errors.New("invalid phone number")
)

type RegisterUserInput struct {
	Email       string
	PhoneNumber string
	Username    string
	FirstName   string
	LastName    string
	Password    string
}

type UpdateUserInput struct {
	Email       string
	PhoneNumber string
	Username    string
	FirstName   string
	LastName    string
	Roles       []string
}

// Register crea un usuario nuevo; email y teléfono deben ser únicos.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.PhoneNumber)
	if len(phone) < 8 || len(phone) > 15 {
		return domain.User{}, ErrWeakPhoneNumber
	}

	if emailAddr != "" {
		if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
			return domain.User{}, ErrAlreadyRegistered
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
	}
	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return domain.User{}, ErrAlreadyRegistered
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		PhoneNumber:    phone,
		Username:       strings.TrimSpace(input.Username),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		HashedPassword: hashed,
		Roles:          []string{},
		RegisterDate:   now,
		UpdatedDate:    now,
	}
	if emailAddr != "" {
		user.Email = &emailAddr
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	if s.logger != nil {
		s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update reemplaza los campos editables, roles incluidos.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	emailAddr := strings.TrimSpace(input.Email)
	if emailAddr == "" {
		user.Email = nil
	} else {
		user.Email = &emailAddr
	}
	user.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	user.Username = strings.TrimSpace(input.Username)
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	user.UpdatedDate = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// ChangePassword exige la contraseña actual antes de aceptar la nueva.
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, user.HashedPassword) {
		return ErrInvalidCredentials
	}
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hashed, time.Now().UTC())
}

// SelectProvince asocia la provincia elegida al usuario.
func (s *UserService) SelectProvince(ctx context.Context, userID, provinceID int64) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.provinces.GetByID(ctx, provinceID); err != nil {
		return err
	}
	return s.users.SelectProvince(ctx, userID, provinceID, time.Now().UTC())
}

// TaxInfo resuelve la provincia seleccionada y su reducción de impuestos.
func (s *UserService) TaxInfo(ctx context.Context, userID int64) (domain.Province, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return domain.Province{}, err
	}
	if user.SelectedProvinceID == nil {
		return domain.Province{}, ErrNoProvinceSelected
	}
	return s.provinces.GetByID(ctx, *user.SelectedProvinceID)
}

// ResetPassword genera una contraseña temporal y la envía por correo.
// Responde igual exista o no la cuenta: sin oráculo de existencia.
func (s *UserService) ResetPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return nil
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return err
	}
	hashed, err := HashPassword(tempPassword)
	if err != nil {
		return err
	}
	// El hash se persiste recién después de entregar el correo: un fallo de
	// envío no invalida la contraseña vigente.
	if s.emailSender == nil {
		return ErrEmailSendFailure
	}
	if err := s.emailSender.SendTemporaryPassword(ctx, emailAddr, tempPassword); err != nil {
		if s.logger != nil {
			s.logger.Warn("send temporary password failed", zap.Error(err), zap.Int64("user_id", user.ID))
		}
		return ErrEmailSendFailure
	}
	return s.users.UpdatePassword(ctx, user.ID, hashed, time.Now().UTC())
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
