// Package catalog persists named world records. A record holds only what is
// needed to regenerate a world: its seed and size.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"tileworld/internal/world"
)

var (
	ErrNotFound      = errors.New("world not found")
	ErrInvalidRecord = errors.New("invalid world record")
)

type Record struct {
	Name      string
	Seed      int64
	Size      int
	CreatedAt time.Time
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Validate checks the name format and that the size is generatable.
func (r Record) Validate() error {
	if !namePattern.MatchString(r.Name) {
		return fmt.Errorf("%w: name %q", ErrInvalidRecord, r.Name)
	}
	if r.Size <= 0 || r.Size > world.MaxSize {
		return fmt.Errorf("%w: size %d", ErrInvalidRecord, r.Size)
	}
	return nil
}

// Store saves and loads records. Save replaces a record with the same name.
type Store interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, name string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
