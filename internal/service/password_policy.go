package service

import (
	"fmt"
	"unicode"

	"github.com/sanjose-despensas/backend/internal/config"
)

type passwordPolicyError struct {
	message string
}

func (e passwordPolicyError) Error() string {
	return e.message
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{message: fmt.Sprintf("la contraseña necesita al menos %d caracteres", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{message: "la contraseña necesita una letra mayúscula"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{message: "la contraseña necesita una letra minúscula"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{message: "la contraseña necesita un número"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{message: "la contraseña necesita un carácter especial"}
	}

	return nil
}
