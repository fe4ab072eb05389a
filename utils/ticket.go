package utils

import (
	"fmt"
	"math/rand"
)

// GenerateTicketID returns a short shareable ticket code of the form
// CN-NNNN, with NNNN drawn uniformly from [1000, 9999]. There is no
// uniqueness check against existing incidents; collisions in the 4-digit
// space are an accepted risk and lookup returns the first match.
func GenerateTicketID() string {
	return fmt.Sprintf("CN-%d", 1000+rand.Intn(9000))
}
