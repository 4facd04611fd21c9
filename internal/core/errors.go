package core

import (
	"errors"
	"fmt"
)

// ErrUnknownTrack is returned when an event refers to a track configuration
// the league does not list.
var ErrUnknownTrack = errors.New("unknown track")

// DuplicateIdentityError reports two rows of one merge operand that share a
// member id.
type DuplicateIdentityError struct {
	MemberID int64
	Operand  string // "base" or "incoming"
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("member id %d is not unique in %s statistic rows", e.MemberID, e.Operand)
}
