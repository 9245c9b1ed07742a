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

const collectionFines = "fines"

type FineRepository struct {
	col *mongo.Collection
}

func NewFineRepository(db *mongo.Database) *FineRepository {
	return &FineRepository{col: db.Collection(collectionFines)}
}

type fineDoc struct {
	ID            string  `bson:"_id"`
	UserID        string  `bson:"user_id"`
	TransactionID *string `bson:"transaction_id,omitempty"`
	Amount        float64 `bson:"amount"`
	PaidAmount    float64 `bson:"paid_amount"`
	Reason        string  `bson:"reason"`
	Status        string  `bson:"status"`
	CreatedAt     int64   `bson:"created_at"`
}

func toFineDoc(f *domain.Fine) fineDoc {
	d := fineDoc{
		ID:         f.ID.String(),
		UserID:     f.UserID.String(),
		Amount:     f.Amount,
		PaidAmount: f.PaidAmount,
		Reason:     f.Reason,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt.Unix(),
	}
	if f.TransactionID != nil {
		s := f.TransactionID.String()
		d.TransactionID = &s
	}
	return d
}

func (d fineDoc) toDomain() (*domain.Fine, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt fine id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", d.UserID, err)
	}
	f := &domain.Fine{
		ID:         id,
		UserID:     userID,
		Amount:     d.Amount,
		PaidAmount: d.PaidAmount,
		Reason:     d.Reason,
		Status:     domain.FineStatus(d.Status),
		CreatedAt:  unixToTime(d.CreatedAt),
	}
	if d.TransactionID != nil {
		txID, err := uuid.Parse(*d.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction id %q: %w", *d.TransactionID, err)
		}
		f.TransactionID = &txID
	}
	return f, nil
}

func (r *FineRepository) Create(ctx context.Context, fine *domain.Fine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toFineDoc(fine)); err != nil {
		return fmt.Errorf("insert fine: %w", err)
	}
	return nil
}

func (r *FineRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

// FindPendingByTransaction returns the open fine attached to a loan, if any.
func (r *FineRepository) FindPendingByTransaction(ctx context.Context, txID uuid.UUID) (*domain.Fine, error) {
	return r.findOne(ctx, bson.M{
		"transaction_id": txID.String(),
		"status":         string(domain.FinePending),
	})
}

func (r *FineRepository) findOne(ctx context.Context, filter bson.M) (*domain.Fine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d fineDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFineNotFound
		}
		return nil, fmt.Errorf("find fine: %w", err)
	}
	return d.toDomain()
}

func (r *FineRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Fine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Fine
	for cur.Next(ctx) {
		var d fineDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode fine: %w", err)
		}
		f, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, cur.Err()
}

func (r *FineRepository) Update(ctx context.Context, fine *domain.Fine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": fine.ID.String()}, toFineDoc(fine))
	if err != nil {
		return fmt.Errorf("update fine: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFineNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the fines collection.
func (r *FineRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
