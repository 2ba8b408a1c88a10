package service

import (
	"time"

	"inkwell/internal/errors"
)

// maxScheduleAhead bounds how far into the future a post may be scheduled.
const maxScheduleAhead = 365 * 24 * time.Hour

// CanMutate decides whether a caller may mutate a resource. Only the owner
// may; callers must check resource existence before calling this so a missing
// resource never surfaces as a permission failure.
func CanMutate(ownerID, callerID uint) bool {
	return ownerID == callerID
}

// IsListable decides whether a post belongs in a default listing at the given
// instant. Scheduled posts are only listable when explicitly requested.
func IsListable(availableAt, now time.Time, includeScheduled bool) bool {
	return includeScheduled || !availableAt.After(now)
}

// ValidateSchedule checks the bounds for rescheduling a post: strictly in the
// future, at most one year ahead.
func ValidateSchedule(at, now time.Time) error {
	if !at.After(now) {
		return errors.ErrSchedulePast
	}
	if at.After(now.Add(maxScheduleAhead)) {
		return errors.ErrScheduleTooFar
	}
	return nil
}
