package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrEmptyUserId     = errors.New("empty user id")
)

// Platform is one of the four deployed applications sharing identity and
// state. The set is closed; anything else is rejected before I/O.
type Platform string

const (
	PlatformHub         Platform = "hub"
	PlatformAscenders   Platform = "ascenders"
	PlatformNeothinkers Platform = "neothinkers"
	PlatformImmortals   Platform = "immortals"
)

func AllPlatforms() []Platform {
	return []Platform{PlatformHub, PlatformAscenders, PlatformNeothinkers, PlatformImmortals}
}

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformHub, PlatformAscenders, PlatformNeothinkers, PlatformImmortals:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, s)
}

func (p Platform) Valid() bool {
	_, err := ParsePlatform(string(p))
	return err == nil
}
