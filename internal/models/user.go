package models

import (
	"strings"
	"time"

	"github.com/sanjose-despensas/backend/internal/constants"
)

// User is an operator account. Role and branch scope travel on the JWT
// claims of every request; this row is the source those claims are built
// from at login.
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	Name               string     `gorm:"not null" json:"name"`
	Role               string     `gorm:"index;not null" json:"role"`
	AllowedBranches    string     `gorm:"default:''" json:"allowed_branches"` // "all" or comma-separated branch ids
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// AllowedBranchIDSet parses the allowed-branches column into a lookup set.
// The second return reports the "all" sentinel.
func (u *User) AllowedBranchIDSet() (map[string]struct{}, bool) {
	return ParseAllowedBranches(u.AllowedBranches)
}

// ParseAllowedBranches parses an allowed-branches value ("all" or a
// comma-separated id list) into a lookup set.
func ParseAllowedBranches(value string) (map[string]struct{}, bool) {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, constants.AllowedBranchesAll) {
		return nil, true
	}
	set := make(map[string]struct{})
	for _, part := range strings.Split(trimmed, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set, false
}
