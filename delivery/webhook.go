// Package delivery publishes posts to their target platforms.
//
// Each platform is reached through a configured webhook: the service posts a
// small JSON payload and treats any 2xx response as accepted. The webhook
// side owns the actual network-specific publishing.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"media-planner/httpclient"
	"media-planner/logger"
	"media-planner/models"
)

// Deliverer publishes one post. A nil error means the platform accepted it.
type Deliverer interface {
	Deliver(ctx context.Context, post models.Post) error
}

// payload is what every platform webhook receives.
type payload struct {
	Title    string `json:"title,omitempty"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// WebhookDeliverer routes posts to per-platform webhook URLs.
type WebhookDeliverer struct {
	client *http.Client
	urls   map[models.Platform]string
}

// NewWebhookDeliverer builds a deliverer from a platform→URL map. Platforms
// with an empty URL fail delivery with a configuration error rather than at
// construction, matching the per-operation error policy.
func NewWebhookDeliverer(urls map[string]string) *WebhookDeliverer {
	mapped := make(map[models.Platform]string, len(urls))
	for k, v := range urls {
		mapped[models.Platform(k)] = v
	}
	return &WebhookDeliverer{
		client: httpclient.New(httpclient.Config{Timeout: 15 * time.Second}),
		urls:   mapped,
	}
}

// Deliver posts the payload to the platform's webhook.
func (d *WebhookDeliverer) Deliver(ctx context.Context, post models.Post) error {
	if !post.Platform.Known() {
		return fmt.Errorf("platform %q not supported", post.Platform)
	}
	url := d.urls[post.Platform]
	if url == "" {
		return fmt.Errorf("webhook URL not configured for %s", post.Platform)
	}

	// Only an already-stored asset URL can travel over the webhook.
	imageURL := ""
	if strings.HasPrefix(post.ImageURL, "http://") || strings.HasPrefix(post.ImageURL, "https://") {
		imageURL = post.ImageURL
	} else if post.ImageURL != "" {
		logger.WarnWithFields("dropping non-URL image reference from webhook payload", logger.Fields{
			"post_id":  post.ID.Hex(),
			"platform": string(post.Platform),
		})
	}

	fullText := post.TextContent
	if post.Title != "" {
		fullText = post.Title + "\n\n" + post.TextContent
	}

	body, err := json.Marshal(payload{
		Title:    post.Title,
		Text:     fullText,
		ImageURL: imageURL,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook for %s unreachable: %w", post.Platform, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook for %s rejected post: status=%d body=%s", post.Platform, resp.StatusCode, string(snippet))
	}
	return nil
}
