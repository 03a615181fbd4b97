package cache

import (
	"context"
	"fmt"
	"time"
)

const sessionBranchTTL = 12 * time.Hour

// Roaming cashiers are pinned to a branch for the shift. The pin lives in
// redis keyed by user id; without redis the pin silently stays unset and
// the scope check falls back to the account's allowed branches.

func sessionBranchKey(userID uint) string {
	return fmt.Sprintf("session:branch:%d", userID)
}

// GetSessionBranch returns the pinned branch, 0 when none is set.
func GetSessionBranch(ctx context.Context, userID uint) (uint, error) {
	if userID == 0 {
		return 0, nil
	}
	var branchID uint
	hit, err := GetJSON(ctx, sessionBranchKey(userID), &branchID)
	if err != nil || !hit {
		return 0, err
	}
	return branchID, nil
}

// SetSessionBranch pins a branch for the rest of the shift.
func SetSessionBranch(ctx context.Context, userID, branchID uint) error {
	if userID == 0 || branchID == 0 {
		return nil
	}
	return SetJSON(ctx, sessionBranchKey(userID), branchID, sessionBranchTTL)
}

// ClearSessionBranch removes the pin.
func ClearSessionBranch(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, sessionBranchKey(userID))
}
