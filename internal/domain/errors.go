package domain

import "errors"

// Domain errors. Every expected failure of a command or query is one of
// these sentinels; the engine never panics for an expected condition.
var (
	ErrSponsorNotFound     = errors.New("sponsor not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyActive       = errors.New("participant already active")
	ErrTreeFull            = errors.New("no open slot in the network")
	ErrEmptyName           = errors.New("participant name is required")
)

// Code returns a stable machine-readable code for a domain error, or ""
// for unknown errors. Adapters use it to pick user-facing messages.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrSponsorNotFound):
		return "sponsor_not_found"
	case errors.Is(err, ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ErrTreeFull):
		return "tree_full"
	case errors.Is(err, ErrEmptyName):
		return "empty_name"
	default:
		return ""
	}
}
