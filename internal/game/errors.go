package game

import "errors"

// Command rejection reasons. Handlers map these to an error event sent to the
// acting connection only; a rejected command never mutates session state.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrNotInRoom         = errors.New("connection is not in a room")
	ErrNameTaken         = errors.New("username already taken")
	ErrPhaseMismatch     = errors.New("action not valid in the current phase")
	ErrNotAuthorized     = errors.New("not allowed to perform this action")
	ErrInsufficientTeams = errors.New("need at least 1 player per team")
)
