package repository

// KeyPrefix namespaces session entries in shared key spaces.
const KeyPrefix = "session:"

// Key returns the store key for a session id.
func Key(sessionID string) string {
	return KeyPrefix + sessionID
}
