package users

import (
	"strings"

	"github.com/jrsteele09/speet-admin/internal/pagination"
	"github.com/jrsteele09/speet-admin/internal/utils"
	"github.com/rs/zerolog/log"
)

// Filter values for the verification status
const (
	StatusAll        = "all"
	StatusVerified   = "verified"
	StatusUnverified = "unverified"
)

type Interest struct {
	ID    string
	Name  string
	Color string
}

// User is a SPEET platform user as shown in the dashboard. Every field is populated.
type User struct {
	ID            string     // Backend identifier
	Email         string     // Login email
	FullName      string     // Display name, falls back to the email's local part
	Phone         string     // Phone number, may be empty
	Gender        string     // Free text from the profile
	Role          string     // Platform role, e.g. "user"
	Status        string     // Account status as reported by the backend
	ProfileImage  string     // Avatar URL, may be empty
	AdminVerified bool       // Verified by an admin
	EmailVerified bool       // Email address confirmed
	Interests     []Interest // Interests picked by the user
	Addresses     []string   // Postal addresses, first is primary
	Location      string     // First address, or empty
}

func (u User) Initials() string {
	var initials []rune
	for _, f := range strings.Fields(u.FullName) {
		initials = append(initials, []rune(f)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

// Page is one page of the user list.
type Page struct {
	Users      []User
	Pagination pagination.Info
}

type rawInterest struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type rawUser struct {
	ID              string        `json:"_id"`
	Email           *string       `json:"email"`
	FullName        *string       `json:"fullName"`
	Phone           *string       `json:"phone"`
	Gender          *string       `json:"gender"`
	Role            *string       `json:"role"`
	Status          *string       `json:"status"`
	ProfileImage    *string       `json:"profileImage"`
	AdminVerify     *bool         `json:"adminVerify"`
	IsEmailVerified *bool         `json:"isEmailVerified"`
	Interest        []rawInterest `json:"interest"`
	Address         []any         `json:"address"`
}

type rawPage struct {
	Users      []rawUser       `json:"users"`
	Pagination *pagination.Raw `json:"pagination"`
}

func (r rawUser) normalize() (User, bool) {
	if r.ID == "" {
		return User{}, false
	}
	u := User{
		ID:            r.ID,
		Email:         strings.TrimSpace(utils.Value(r.Email)),
		FullName:      strings.TrimSpace(utils.Value(r.FullName)),
		Phone:         utils.Value(r.Phone),
		Gender:        utils.Value(r.Gender),
		Role:          utils.Value(r.Role),
		Status:        utils.Value(r.Status),
		ProfileImage:  utils.Value(r.ProfileImage),
		AdminVerified: utils.Value(r.AdminVerify),
		EmailVerified: utils.Value(r.IsEmailVerified),
		Interests:     make([]Interest, 0, len(r.Interest)),
		Addresses:     utils.ToStringSlice(r.Address),
	}
	if u.FullName == "" {
		u.FullName, _, _ = strings.Cut(u.Email, "@")
	}
	for _, i := range r.Interest {
		if i.ID == "" && i.Name == "" {
			continue
		}
		u.Interests = append(u.Interests, Interest{ID: i.ID, Name: i.Name, Color: i.Color})
	}
	if len(u.Addresses) > 0 {
		u.Location = u.Addresses[0]
	}
	return u, true
}

func normalizeAll(raw []rawUser) []User {
	out := make([]User, 0, len(raw))
	for _, r := range raw {
		u, ok := r.normalize()
		if !ok {
			log.Warn().Msg("dropping user record without an ID")
			continue
		}
		out = append(out, u)
	}
	return out
}

// Filter narrows a page of users by a search over name and email and by verification status.
func Filter(users []User, query, status string) []User {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.FullName), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		switch status {
		case StatusVerified:
			if !u.EmailVerified {
				continue
			}
		case StatusUnverified:
			if u.EmailVerified {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}
