package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjose-despensas/backend/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState is the cached auth snapshot of a staff account. It lets
// the middleware validate token versions without a user lookup per
// request. TokenInvalidBefore is a Unix second, 0 when unset.
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	AllowedBranches    string `json:"allowed_branches"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState derives a snapshot from the account row.
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:          user.ID,
		Username:        user.Username,
		Role:            user.Role,
		AllowedBranches: user.AllowedBranches,
		TokenVersion:    user.TokenVersion,
		UpdatedAt:       time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState reads a snapshot; the bool reports a cache hit.
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState stores a snapshot.
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState drops a snapshot.
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
