package storage

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Namer produces a unique on-disk name for an uploaded file.
type Namer interface {
	Name(originalName string) string
}

// TimestampNamer names files <unix-ms>-<random>-<originalName>. Two uploads
// in the same millisecond that draw the same random value for the same
// original name collide and overwrite each other; that window is a known
// weakness of the scheme, kept for compatibility with existing deployments.
type TimestampNamer struct{}

func (TimestampNamer) Name(originalName string) string {
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), originalName)
}

// UUIDNamer is the collision-resistant alternative, selected with
// STORAGE_NAMING=uuid.
type UUIDNamer struct{}

func (UUIDNamer) Name(originalName string) string {
	return uuid.NewString() + "-" + originalName
}

// NamerFor maps a configured scheme name to a Namer. Unknown schemes fall
// back to the timestamp namer.
func NamerFor(scheme string) Namer {
	if scheme == "uuid" {
		return UUIDNamer{}
	}
	return TimestampNamer{}
}
