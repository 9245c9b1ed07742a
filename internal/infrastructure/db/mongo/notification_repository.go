package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
)

const collectionNotifications = "notifications"

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Type      string `bson:"type"`
	Title     string `bson:"title"`
	Message   string `bson:"message"`
	IsRead    bool   `bson:"is_read"`
	CreatedAt int64  `bson:"created_at"`
}

func toNotificationDoc(n *domain.Notification) notificationDoc {
	return notificationDoc{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Unix(),
	}
}

func (d notificationDoc) toDomain() (*domain.Notification, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt notification id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", d.UserID, err)
	}
	return &domain.Notification{
		ID:        id,
		UserID:    userID,
		Type:      domain.NotificationType(d.Type),
		Title:     d.Title,
		Message:   d.Message,
		IsRead:    d.IsRead,
		CreatedAt: unixToTime(d.CreatedAt),
	}, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toNotificationDoc(n)); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d notificationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return d.toDomain()
}

// ListForUser returns notifications newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID.String()}
	if unreadOnly {
		filter["is_read"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Notification
	for cur.Next(ctx) {
		var d notificationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		n, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, cur.Err()
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": n.ID.String()}, toNotificationDoc(n))
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the notifications collection.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
