package models

import "fmt"

// Platform is the social network a post is published to.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// Platforms returns the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformLinkedIn, PlatformInstagram, PlatformFacebook}
}

// ParsePlatform validates a raw platform string. Create/update paths must
// reject unknown values; display paths tolerate them with a fallback glyph.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformLinkedIn, PlatformInstagram, PlatformFacebook:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// Known reports whether p is one of the supported platforms.
func (p Platform) Known() bool {
	_, err := ParsePlatform(string(p))
	return err == nil
}
