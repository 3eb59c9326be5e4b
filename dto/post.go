package dto

import "media-planner/models"

// PostDraft is the create/update payload. The scheduled instant travels as
// the user's wall-clock string (see models.LocalTime); the image URL, when
// present, must come from a completed upload call.
type PostDraft struct {
	Title       string           `json:"title,omitempty"`
	TextContent string           `json:"text_content"`
	Platform    models.Platform  `json:"platform"`
	ScheduledAt models.LocalTime `json:"scheduled_at"`
	ImageURL    string           `json:"image_url,omitempty"`
}

// UploadResponse is returned by the image upload endpoint.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

// SendNowResponse acknowledges a manual delivery trigger.
type SendNowResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CheckPendingResult summarizes a catch-up run over due posts.
type CheckPendingResult struct {
	CheckedAt    string   `json:"checked_at"`
	TotalPending int      `json:"total_pending"`
	Published    int      `json:"published"`
	Failed       int      `json:"failed"`
	Details      []string `json:"details"`
}
