package sessionstore

import "fmt"

// SessionKey is the Redis key for a session id.
func SessionKey(id string) string {
	return fmt.Sprintf("spacia:session:%s", id)
}
