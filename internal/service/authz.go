package service

import (
	"errors"

	"travel-api/internal/domain"
)

// ErrForbidden indica identidad válida pero sin privilegios suficientes.
var ErrForbidden = errors.New("forbidden")

// HasAnyRole devuelve true si la intersección entre roles del usuario y
// roles requeridos no es vacía (OR, no AND).
func HasAnyRole(user domain.User, required ...string) bool {
	for _, have := range user.Roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// CheckRoles falla con ErrForbidden cuando ningún rol requerido está presente.
func CheckRoles(user domain.User, required ...string) error {
	if !HasAnyRole(user, required...) {
		return ErrForbidden
	}
	return nil
}

// CheckOwner exige identidad dueña del recurso. Sin bypass para admin:
// los endpoints de usuario son estrictamente owner-only.
func CheckOwner(user domain.User, ownerID int64) error {
	if user.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
