// Package credential holds password hashes. A Hash can be created from a
// plaintext, checked against a candidate and stored, but it can never be read
// back as text.
package credential

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

const redacted = "[REDACTED]"

var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrNotReadable     = errors.New("password hash is not a readable attribute")
	ErrUnset           = errors.New("password hash has not been set")
)

// Hash is a salted bcrypt digest.
type Hash struct {
	digest []byte
}

// New hashes plaintext with a fresh salt.
func New(plaintext string) (Hash, error) {
	if plaintext == "" {
		return Hash{}, ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Hash{}, ErrPasswordTooLong
		}
		return Hash{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return Hash{digest: digest}, nil
}

// Matches reports whether plaintext is the password this hash was made from.
// An unset hash matches nothing.
func (h Hash) Matches(plaintext string) bool {
	if !h.IsSet() {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.digest, []byte(plaintext)) == nil
}

// IsSet reports whether the hash holds a digest.
func (h Hash) IsSet() bool {
	return len(h.digest) > 0
}

// Value implements driver.Valuer. An unset hash cannot be persisted.
func (h Hash) Value() (driver.Value, error) {
	if !h.IsSet() {
		return nil, ErrUnset
	}
	return string(h.digest), nil
}

// Scan implements sql.Scanner.
func (h *Hash) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		h.digest = nil
	case string:
		h.digest = []byte(v)
	case []byte:
		h.digest = append([]byte(nil), v...)
	default:
		return fmt.Errorf("credential: cannot scan %T into Hash", src)
	}
	return nil
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return nil, ErrNotReadable
}

func (h Hash) String() string {
	return redacted
}

func (h Hash) GoString() string {
	return redacted
}

func (h Hash) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
