// Package identity issues the per-installation device identifier used to
// de-duplicate anonymous view counts.
//
// Identifiers look like device_<unix-millis>_<9 lowercase alphanumerics>.
// Providers create them lazily on first use and keep returning the same one.
package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider returns a stable device identifier, creating one on first use.
type Provider interface {
	DeviceID(ctx context.Context) (string, error)
}

const randomLength = 9

var idPattern = regexp.MustCompile(`^device_\d+_[a-z0-9]{9}$`)

// NewID mints a fresh device identifier.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("device_%d_%s", t.UnixMilli(), random[:randomLength])
}

// Valid reports whether id has the device identifier shape.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}
