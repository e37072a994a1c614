package service

import "errors"

// Error kinds crossing the service boundary. Controllers map these to HTTP
// statuses; nothing here is ever fatal to the process.
var (
	// ErrInvalidIsbn: checksum failure. User-correctable, no retry.
	ErrInvalidIsbn = errors.New("not a valid book isbn")

	// ErrLookupFailed: every metadata source was exhausted.
	ErrLookupFailed = errors.New("book not found in any lookup source")

	// ErrInviteInvalid: a join identifier named a vault that does not
	// exist. Callers fall through to vault creation rather than failing.
	ErrInviteInvalid = errors.New("invite link invalid: vault not found")

	// ErrSyncFailed: document store unreachable or a write was rejected.
	// Loads downgrade to the offline snapshot instead of surfacing this.
	ErrSyncFailed = errors.New("library sync failed")

	// ErrNotFound: the referenced book/vault/session is gone.
	ErrNotFound = errors.New("not found")

	// ErrScanLocked: an acquisition is already in flight for the session.
	ErrScanLocked = errors.New("scan already in progress")

	// ErrSessionNotFound: unknown or expired scan session.
	ErrSessionNotFound = errors.New("scan session not found")

	// ErrNoPendingScan: confirm/abandon without an accepted code.
	ErrNoPendingScan = errors.New("no pending acquisition for this session")

	// ErrInvalidCredentials covers every sign-in failure; details are not
	// leaked to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken: registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)
