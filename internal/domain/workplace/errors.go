package workplace

import "errors"

var (
	ErrWorkplaceNotFound   = errors.New("workplace not found")
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrJoinRequestExists   = errors.New("join request already submitted")
	ErrAlreadyAMember      = errors.New("already a member of this workplace")
	ErrNotTheOwner         = errors.New("only the workplace owner can do this")
	ErrBossRoleRequired    = errors.New("boss role required")
)
