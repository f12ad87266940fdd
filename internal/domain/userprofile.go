package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserProfile is the farmer-facing identity used to personalize instructions.
// Tashil is the sub-district.
type UserProfile struct {
	Name     string
	Email    string
	Mobile   string
	Country  string
	State    string
	District string
	Tashil   string
}

// Location renders the profile location as "tashil, district, state, country".
func (p UserProfile) Location() string {
	return strings.Join([]string{p.Tashil, p.District, p.State, p.Country}, ", ")
}

// Validate checks that every required field is present. Email is optional.
func (p UserProfile) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", p.Name},
		{"mobile", p.Mobile},
		{"country", p.Country},
		{"state", p.State},
		{"district", p.District},
		{"tashil", p.Tashil},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidProfile, strings.Join(missing, ", "))
	}
	return nil
}

// ErrInvalidProfile is returned by UserProfile.Validate.
var ErrInvalidProfile = errors.New("invalid user profile")

// Account is a registered user. PasswordHash is a bcrypt hash.
type Account struct {
	UserProfile
	PasswordHash string
	CreatedAt    time.Time
}
