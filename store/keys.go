package store

import "fmt"

// recordKey returns the Redis key for a job record.
func recordKey(id string) string {
	return fmt.Sprintf("jobident:job:%s", id)
}
