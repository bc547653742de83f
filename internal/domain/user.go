package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common user validation errors.
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// Role restricts what a user is allowed to do beyond owning their own tasks.
type Role string

// Valid roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account. The stored bcrypt hash is never
// serialized to clients; callers building API responses must go through a
// dedicated response type.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"password"`
	FirstName      string             `bson:"firstName,omitempty"`
	LastName       string             `bson:"lastName,omitempty"`
	Role           Role               `bson:"role"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// NewUser creates a User from registration input. The caller is responsible
// for hashing the password and assigning it to HashedPassword before the
// user is stored; NewUser only validates and normalizes the input fields.
func NewUser(email, firstName, lastName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:     NormalizeEmail(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields. Returns an error if any field is invalid.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if !u.Role.IsValid() {
		return NewValidationError("role", "must be user or admin")
	}
	return nil
}

// ValidatePassword checks a plaintext password against the account rules.
// The upper bound is bcrypt's practical input limit.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < 6:
		return ErrPasswordTooShort
	case len(password) > 72:
		return ErrPasswordTooLong
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address so the unique index
// on the users collection cannot be bypassed by case or whitespace variants.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmailFormat performs a basic shape check: one @ with a dotted domain.
// Full RFC 5322 validation is delegated to the request validation layer.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
