package redis

const (
	// KeyPrefixSession is the prefix for per-visitor gallery state keys
	KeyPrefixSession = "remotelife:session:"
	// KeyViews is the hash of city ID -> marker clicks
	KeyViews = "remotelife:views"
)

// SessionKey returns the Redis key for a session by ID
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// ViewsKey returns the key of the city view counters
func ViewsKey() string {
	return KeyViews
}
