package services

import (
	"inkwell/internal/apperr"
)

// Owned is any resource with a single owning user.
type Owned interface {
	OwnerID() uint
}

// authorize is the one ownership check every mutating or private read
// goes through.
func authorize(r Owned, userID uint, action string) error {
	if userID == 0 || r.OwnerID() != userID {
		return apperr.Forbidden("Unauthorized: You can only " + action + " your own posts")
	}
	return nil
}
