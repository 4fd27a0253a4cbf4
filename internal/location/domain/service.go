package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Resolver looks up the commission currently associated with a watcher.
type Resolver interface {
	// Resolve returns the commission referenced by the watcher's latest
	// location, or nil when the watcher has no location yet.
	Resolve(ctx context.Context, watcherID snowflake.ID) (*Commission, error)
}
