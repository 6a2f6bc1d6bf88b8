package labs

import "errors"

// Sentinel errors returned by the registry, ledger and gateway. Handlers
// map these onto HTTP statuses.
var (
	// ErrLabActive means a lab session with that lab ID is already running.
	ErrLabActive = errors.New("lab is already active")
	// ErrNoAccess means the lab does not exist or the caller is neither the
	// owner nor an accepted collaborator.
	ErrNoAccess = errors.New("no access or lab not found")
	// ErrNotOwner means the caller did not start the lab.
	ErrNotOwner = errors.New("not the owner of this lab")
	// ErrSelfInvite means the owner tried to invite their own email.
	ErrSelfInvite = errors.New("cannot invite yourself")
	// ErrNoInvite means no invite exists for that lab and email.
	ErrNoInvite = errors.New("no collaboration found for this lab and user")
	// ErrInviteExpired means the invite was already accepted; acceptance is
	// a one-shot transition and cannot be repeated.
	ErrInviteExpired = errors.New("invite expired")
)
