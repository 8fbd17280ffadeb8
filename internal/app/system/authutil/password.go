// internal/app/system/authutil/password.go
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Admin password constraints. bcrypt ignores input past 72 bytes, so longer
// passwords are rejected rather than silently truncated.
const (
	MinPasswordLength = 10
	MaxPasswordLength = 72
	BcryptCost        = 12
)

var (
	ErrPasswordTooShort     = errors.New("Password must be at least 10 characters.")
	ErrPasswordTooLong      = errors.New("Password must be at most 72 bytes.")
	ErrPasswordCommon       = errors.New("This password is too common. Please choose a different one.")
	ErrPasswordMatchesEmail = errors.New("Password must not contain the account email.")
)

var commonPasswords = map[string]bool{
	"1234567890":    true,
	"12345678910":   true,
	"123456789012":  true,
	"0123456789":    true,
	"1111111111":    true,
	"0000000000":    true,
	"password12":    true,
	"password123":   true,
	"password1234":  true,
	"qwertyuiop":    true,
	"qwerty1234":    true,
	"qwerty12345":   true,
	"1q2w3e4r5t":    true,
	"iloveyou12":    true,
	"letmein123":    true,
	"welcome123":    true,
	"admin12345":    true,
	"administrator": true,
	"changeme123":   true,
	"stratatrips":   true,
	"travel12345":   true,
	"holiday2024":   true,
	"holiday2025":   true,
	"holiday2026":   true,
}

// PasswordRules describes the admin password policy for error messages and docs.
func PasswordRules() string {
	return "Password must be 10 to 72 characters, must not contain the account email and cannot be a common password."
}

// ValidatePassword checks length and the common-password list.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

// ValidateAdminPassword runs ValidatePassword and also rejects passwords that
// contain the mailbox part of the admin's email.
func ValidateAdminPassword(email, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	if len(local) >= 4 && strings.Contains(strings.ToLower(password), local) {
		return ErrPasswordMatchesEmail
	}
	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
