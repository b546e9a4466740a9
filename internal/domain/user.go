package domain

import "time"

type User struct {
	ID                 int64      `json:"id"`
	Email              *string    `json:"email,omitempty"`
	PhoneNumber        string     `json:"phone_number"`
	Username           string     `json:"username"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	HashedPassword     string     `json:"-"`
	Roles              []string   `json:"roles"`
	SelectedProvinceID *int64     `json:"selected_province_id,omitempty"`
	RegisterDate       time.Time  `json:"register_date"`
	UpdatedDate        time.Time  `json:"updated_date"`
	LastLoginDate      *time.Time `json:"last_login_date,omitempty"`
}
