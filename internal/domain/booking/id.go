package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idPrefix = "BK"

// NewID builds a booking identifier: "BK" + unix milliseconds + the first 8
// characters of a random UUID, uppercased. Not checked against the store
// here; the insert path retries with a fresh ID on a primary-key collision.
func NewID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return idPrefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix
}
