package delivery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-planner/delivery"
	"media-planner/models"
)

func testPost(platform models.Platform) models.Post {
	return models.Post{
		Platform:    platform,
		Title:       "Launch",
		TextContent: "We are live.",
		ScheduledAt: models.NewLocalTime(2024, time.March, 15, 9, 30, 0),
		Status:      models.StatusScheduled,
	}
}

func TestDeliverPostsComposedPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := delivery.NewWebhookDeliverer(map[string]string{"linkedin": srv.URL})

	post := testPost(models.PlatformLinkedIn)
	post.ImageURL = "https://assets.example.com/x.jpg"
	require.NoError(t, d.Deliver(context.Background(), post))

	assert.Equal(t, "Launch", got["title"])
	assert.Equal(t, "Launch\n\nWe are live.", got["text"])
	assert.Equal(t, "https://assets.example.com/x.jpg", got["image_url"])
}

func TestDeliverWithoutTitleSendsBodyOnly(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	d := delivery.NewWebhookDeliverer(map[string]string{"facebook": srv.URL})

	post := testPost(models.PlatformFacebook)
	post.Title = ""
	require.NoError(t, d.Deliver(context.Background(), post))

	assert.Equal(t, "We are live.", got["text"])
}

func TestDeliverDropsNonURLImageReference(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	d := delivery.NewWebhookDeliverer(map[string]string{"instagram": srv.URL})

	post := testPost(models.PlatformInstagram)
	post.ImageURL = "local-file.jpg"
	require.NoError(t, d.Deliver(context.Background(), post))

	_, present := got["image_url"]
	assert.False(t, present, "non-URL image reference must not travel over the webhook")
}

func TestDeliverRejectedByWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream refused"))
	}))
	defer srv.Close()

	d := delivery.NewWebhookDeliverer(map[string]string{"linkedin": srv.URL})

	err := d.Deliver(context.Background(), testPost(models.PlatformLinkedIn))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
	assert.Contains(t, err.Error(), "upstream refused")
}

func TestDeliverUnknownPlatform(t *testing.T) {
	d := delivery.NewWebhookDeliverer(map[string]string{})

	err := d.Deliver(context.Background(), testPost(models.Platform("myspace")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestDeliverUnconfiguredPlatform(t *testing.T) {
	d := delivery.NewWebhookDeliverer(map[string]string{"linkedin": ""})

	err := d.Deliver(context.Background(), testPost(models.PlatformLinkedIn))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
