package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"media-planner/delivery"
	"media-planner/dto"
	"media-planner/eventbus"
	"media-planner/events"
	"media-planner/logger"
	"media-planner/models"
)

// ErrNotFound covers a missing post and a post owned by someone else; the
// API does not distinguish the two.
var ErrNotFound = errors.New("post not found")

// ErrTerminal is returned when a delivery is requested for a post that has
// already been sent or has failed. Terminal statuses never change.
var ErrTerminal = errors.New("post already sent or failed")

// ValidationError is a request payload problem caught before any store or
// network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PostStore is the persistence surface the service needs; implemented by
// repositories.PostRepository.
type PostStore interface {
	Insert(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, platform models.Platform, skip, limit int64) ([]models.Post, error)
	UpdateDraft(ctx context.Context, id primitive.ObjectID, title, textContent string, platform models.Platform, imageURL string, scheduledAt models.LocalTime) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status, errorMessage string) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindDue(ctx context.Context, due models.LocalTime, limit int64) ([]models.Post, error)
}

// PostService owns the server-side post lifecycle: validation, persistence,
// delivery and outcome recording.
type PostService struct {
	store     PostStore
	deliverer delivery.Deliverer
	bus       eventbus.Publisher
	busTopic  string
	loc       *time.Location
	batchSize int64
}

func NewPostService(store PostStore, deliverer delivery.Deliverer, bus eventbus.Publisher, busTopic string, loc *time.Location, batchSize int64) *PostService {
	if bus == nil {
		bus = eventbus.Noop{}
	}
	if loc == nil {
		loc = time.Local
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &PostService{
		store:     store,
		deliverer: deliverer,
		bus:       bus,
		busTopic:  busTopic,
		loc:       loc,
		batchSize: batchSize,
	}
}

func validateDraft(d dto.PostDraft) error {
	if strings.TrimSpace(d.TextContent) == "" {
		return &ValidationError{Field: "text_content", Reason: "must not be empty"}
	}
	if !d.Platform.Known() {
		return &ValidationError{Field: "platform", Reason: "unsupported platform " + string(d.Platform)}
	}
	if d.ScheduledAt.IsZero() {
		return &ValidationError{Field: "scheduled_at", Reason: "must be set"}
	}
	return nil
}

// List returns the user's posts, newest scheduled first. platform narrows
// the result when non-empty; unknown platform values simply match nothing.
func (s *PostService) List(ctx context.Context, userID primitive.ObjectID, platform string, skip, limit int64) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.store.ListByUser(ctx, userID, models.Platform(platform), skip, limit)
}

// Create validates the draft and stores a new scheduled post. Delivery
// happens later, via the dispatcher scan or a manual trigger.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, d dto.PostDraft) (*models.Post, error) {
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	post := &models.Post{
		UserID:      userID,
		Platform:    d.Platform,
		Title:       d.Title,
		TextContent: d.TextContent,
		ImageURL:    d.ImageURL,
		ScheduledAt: d.ScheduledAt,
		Status:      models.StatusScheduled,
	}
	return s.store.Insert(ctx, post)
}

// getOwned loads a post and hides it when it belongs to another user.
func (s *PostService) getOwned(ctx context.Context, userID primitive.ObjectID, postID string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}
	post, err := s.store.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotFound
	}
	return post, nil
}

// Update replaces the editable fields; status is never touched here.
func (s *PostService) Update(ctx context.Context, userID primitive.ObjectID, postID string, d dto.PostDraft) (*models.Post, error) {
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateDraft(ctx, post.ID, d.Title, d.TextContent, d.Platform, d.ImageURL, d.ScheduledAt); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, post.ID)
}

// Delete removes the post. Deleting an already-gone post is ErrNotFound so
// the caller can report it, though the end state is the same.
func (s *PostService) Delete(ctx context.Context, userID primitive.ObjectID, postID string) error {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, post.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SendNow delivers the post immediately and records the terminal outcome.
// The returned status is sent or failed; message carries the failure detail.
func (s *PostService) SendNow(ctx context.Context, userID primitive.ObjectID, postID string) (models.Status, string, error) {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return "", "", err
	}
	if post.Status.Terminal() {
		return post.Status, "", ErrTerminal
	}
	status, message := s.deliverAndRecord(ctx, *post, "manual")
	return status, message, nil
}

// CheckPending delivers every scheduled post whose wall-clock instant is
// due, comparing in the configured timezone. It is both the catch-up
// endpoint and the dispatcher's periodic scan.
func (s *PostService) CheckPending(ctx context.Context) (dto.CheckPendingResult, error) {
	now := models.LocalTimeOf(time.Now().In(s.loc))
	due, err := s.store.FindDue(ctx, now, s.batchSize)
	if err != nil {
		return dto.CheckPendingResult{}, err
	}

	result := dto.CheckPendingResult{
		CheckedAt:    now.String(),
		TotalPending: len(due),
		Details:      make([]string, 0, len(due)),
	}
	for _, post := range due {
		// FindDue only returns scheduled posts, but re-check in case a
		// manual send raced this scan.
		if post.Status.Terminal() {
			continue
		}
		status, message := s.deliverAndRecord(ctx, post, "dispatcher")
		if status == models.StatusSent {
			result.Published++
			result.Details = append(result.Details, fmt.Sprintf("post %s published", post.ID.Hex()))
		} else {
			result.Failed++
			result.Details = append(result.Details, fmt.Sprintf("post %s failed: %s", post.ID.Hex(), message))
		}
	}
	return result, nil
}

// deliverAndRecord runs one delivery attempt, persists the terminal status
// and publishes the outcome event. Event publication is best-effort.
func (s *PostService) deliverAndRecord(ctx context.Context, post models.Post, trigger string) (models.Status, string) {
	status := models.StatusSent
	message := ""
	if err := s.deliverer.Deliver(ctx, post); err != nil {
		status = models.StatusFailed
		message = err.Error()
	}

	if err := s.store.UpdateStatus(ctx, post.ID, status, message); err != nil {
		logger.ErrorWithFields("failed to record delivery outcome", logger.Fields{
			"post_id": post.ID.Hex(),
			"status":  string(status),
			"error":   err.Error(),
		})
	}

	eventType := events.PostDeliverySucceeded
	if status == models.StatusFailed {
		eventType = events.PostDeliveryFailed
	}
	evt, err := eventbus.NewEvent(eventType, "media-planner", events.DeliveryResultEvent{
		PostID:   post.ID,
		UserID:   post.UserID,
		Platform: post.Platform,
		Status:   status,
		Error:    message,
		Trigger:  trigger,
	})
	if err == nil {
		if err := s.bus.Publish(ctx, s.busTopic, evt); err != nil {
			logger.ErrorWithFields("failed to publish delivery event", logger.Fields{
				"post_id": post.ID.Hex(),
				"error":   err.Error(),
			})
		}
	}

	return status, message
}
