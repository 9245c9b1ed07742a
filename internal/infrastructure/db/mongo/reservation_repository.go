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

const collectionReservations = "reservations"

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

type reservationDoc struct {
	ID            string `bson:"_id"`
	UserID        string `bson:"user_id"`
	BookID        string `bson:"book_id"`
	BookTitle     string `bson:"book_title"`
	Status        string `bson:"status"`
	QueuePosition int    `bson:"queue_position"`
	CreatedAt     int64  `bson:"created_at"`
	ExpiryDate    *int64 `bson:"expiry_date,omitempty"`
}

func toReservationDoc(res *domain.Reservation) reservationDoc {
	d := reservationDoc{
		ID:            res.ID.String(),
		UserID:        res.UserID.String(),
		BookID:        res.BookID.String(),
		BookTitle:     res.BookTitle,
		Status:        string(res.Status),
		QueuePosition: res.QueuePosition,
		CreatedAt:     res.CreatedAt.Unix(),
	}
	if res.ExpiryDate != nil {
		ts := res.ExpiryDate.Unix()
		d.ExpiryDate = &ts
	}
	return d
}

func (d reservationDoc) toDomain() (*domain.Reservation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt reservation id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", d.UserID, err)
	}
	bookID, err := uuid.Parse(d.BookID)
	if err != nil {
		return nil, fmt.Errorf("corrupt book id %q: %w", d.BookID, err)
	}
	res := &domain.Reservation{
		ID:            id,
		UserID:        userID,
		BookID:        bookID,
		BookTitle:     d.BookTitle,
		Status:        domain.ReservationStatus(d.Status),
		QueuePosition: d.QueuePosition,
		CreatedAt:     unixToTime(d.CreatedAt),
	}
	if d.ExpiryDate != nil {
		t := unixToTime(*d.ExpiryDate)
		res.ExpiryDate = &t
	}
	return res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toReservationDoc(res)); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d reservationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return d.toDomain()
}

func (r *ReservationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Reservation
	for cur.Next(ctx) {
		var d reservationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode reservation: %w", err)
		}
		res, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, cur.Err()
}

// CountActiveForBook counts PENDING and READY reservations for a book.
func (r *ReservationRepository) CountActiveForBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"book_id": bookID.String(),
		"status": bson.M{"$in": []string{
			string(domain.ReservationPending),
			string(domain.ReservationReady),
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return n, nil
}

// FindNextPendingForBook returns the pending hold with the lowest queue
// position.
func (r *ReservationRepository) FindNextPendingForBook(ctx context.Context, bookID uuid.UUID) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "queue_position", Value: 1}})
	var d reservationDoc
	err := r.col.FindOne(ctx, bson.M{
		"book_id": bookID.String(),
		"status":  string(domain.ReservationPending),
	}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find next reservation: %w", err)
	}
	return d.toDomain()
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.ReplaceOne(ctx, bson.M{"_id": res.ID.String()}, toReservationDoc(res))
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if out.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "status", Value: 1}, {Key: "queue_position", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
