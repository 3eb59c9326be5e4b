package calendar

import "media-planner/models"

// Rendering lookups are total: every input renders something, unknown values
// fall through to an explicit default arm instead of raising.

// PlatformGlyph returns the icon shown next to a post in a calendar cell or
// list row. Unrecognized platforms get a generic device glyph.
func PlatformGlyph(p models.Platform) string {
	switch p {
	case models.PlatformLinkedIn:
		return "💼"
	case models.PlatformInstagram:
		return "📷"
	case models.PlatformFacebook:
		return "👥"
	default:
		return "📱"
	}
}

// StatusColor returns the badge color token for a status.
func StatusColor(s models.Status) string {
	switch s {
	case models.StatusScheduled:
		return "blue"
	case models.StatusSent:
		return "green"
	case models.StatusFailed:
		return "red"
	default:
		return "gray"
	}
}

// StatusLabel returns the badge text for a status. Unknown statuses render
// as their raw value so the cell is never blank.
func StatusLabel(s models.Status) string {
	switch s {
	case models.StatusScheduled:
		return "Scheduled"
	case models.StatusSent:
		return "Sent"
	case models.StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}
