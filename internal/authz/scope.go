package authz

import (
	"strconv"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/models"
)

// CanOperateBranch decides whether an account may act on a branch. Super
// and admin see every branch; roaming cashiers may work any branch until
// a shift pin narrows them (checked separately against the session);
// everyone else is limited to the allowed-branches claim.
func CanOperateBranch(role, allowedBranches string, branchID uint) bool {
	if branchID == 0 {
		return false
	}
	switch role {
	case constants.RoleSuper, constants.RoleAdmin:
		return true
	case constants.RoleRoamingCashier:
		return true
	}

	ids, all := models.ParseAllowedBranches(allowedBranches)
	if all {
		return true
	}
	_, ok := ids[strconv.FormatUint(uint64(branchID), 10)]
	return ok
}

// SessionBranchAllows applies a roaming cashier's shift pin: an unset pin
// allows any branch, a set pin only its own branch.
func SessionBranchAllows(pinnedBranchID, branchID uint) bool {
	if pinnedBranchID == 0 {
		return true
	}
	return pinnedBranchID == branchID
}
