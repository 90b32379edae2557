package redis

import "fmt"

// Key prefix for all bot data
const keyPrefix = "hangbot"

// statsKey returns the Redis key for the HASH of player stats
func statsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}

// recentWordsKey returns the Redis key for the LIST of recent solutions
func recentWordsKey() string {
	return fmt.Sprintf("%s:recent_words", keyPrefix)
}

// renderKey returns the Redis key for a cached render
func renderKey(key string) string {
	return fmt.Sprintf("%s:render:%s", keyPrefix, key)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
