// README: Match summaries returned to the caller.
package matching

import (
	"time"

	"kabu/internal/types"
)

// Summary describes one trip matched against the reference trip.
type Summary struct {
	ID            types.ID  `json:"id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"time"`
	Gender        string    `json:"gender"`
}

// Group is the deduplicated list of matches for one invocation.
type Group []Summary
