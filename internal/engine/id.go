package engine

import (
	"crypto/rand"
	"fmt"
	"time"
)

// generateID creates a short random hex ID for runs.
func generateID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
