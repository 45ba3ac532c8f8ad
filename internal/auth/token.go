package auth

import "github.com/google/uuid"

// newRecoveryToken mints the opaque token embedded in recovery links.
// Tokens are not persisted, so the link is informational only.
// TODO: store recovery tokens and verify them on login.
func newRecoveryToken() string {
	return uuid.New().String()
}
