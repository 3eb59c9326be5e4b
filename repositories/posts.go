package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"media-planner/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// Insert stores a new post and returns it with its assigned id.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) (*models.Post, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.StatusScheduled
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// FindByID returns a post by its ObjectID.
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns the user's posts ordered by scheduled_at descending.
// platform narrows the result when non-empty; skip/limit page through it.
func (r *PostRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, platform models.Platform, skip, limit int64) ([]models.Post, error) {
	filter := bson.M{"user_id": userID}
	if platform != "" {
		filter["platform"] = platform
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateDraft replaces the editable fields of a post. Status is untouched:
// an update changes what gets published, never where the post sits in its
// lifecycle.
func (r *PostRepository) UpdateDraft(ctx context.Context, id primitive.ObjectID, title, textContent string, platform models.Platform, imageURL string, scheduledAt models.LocalTime) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"title":        title,
			"text_content": textContent,
			"platform":     platform,
			"image_url":    imageURL,
			"scheduled_at": scheduledAt,
			"updated_at":   time.Now(),
		},
	})
	return err
}

// UpdateStatus records a delivery outcome.
func (r *PostRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status, errorMessage string) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if errorMessage != "" {
		set["error_message"] = errorMessage
	}
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a post and reports whether it existed.
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// FindDue returns scheduled posts whose wall-clock instant is at or before
// due. The stored scheduled_at strings are zero-padded, so the range match
// is a plain lexicographic $lte.
func (r *PostRepository) FindDue(ctx context.Context, due models.LocalTime, limit int64) ([]models.Post, error) {
	filter := bson.M{
		"status":       models.StatusScheduled,
		"scheduled_at": bson.M{"$lte": due.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
