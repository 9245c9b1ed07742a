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

const collectionTransactions = "transactions"

type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

type transactionDoc struct {
	ID         string `bson:"_id"`
	UserID     string `bson:"user_id"`
	BookID     string `bson:"book_id"`
	BookTitle  string `bson:"book_title"`
	IssueDate  int64  `bson:"issue_date"`
	DueDate    int64  `bson:"due_date"`
	ReturnDate *int64 `bson:"return_date,omitempty"`
	Status     string `bson:"status"`
}

func toTransactionDoc(tx *domain.Transaction) transactionDoc {
	d := transactionDoc{
		ID:        tx.ID.String(),
		UserID:    tx.UserID.String(),
		BookID:    tx.BookID.String(),
		BookTitle: tx.BookTitle,
		IssueDate: tx.IssueDate.Unix(),
		DueDate:   tx.DueDate.Unix(),
		Status:    string(tx.Status),
	}
	if tx.ReturnDate != nil {
		ts := tx.ReturnDate.Unix()
		d.ReturnDate = &ts
	}
	return d
}

func (d transactionDoc) toDomain() (*domain.Transaction, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt transaction id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", d.UserID, err)
	}
	bookID, err := uuid.Parse(d.BookID)
	if err != nil {
		return nil, fmt.Errorf("corrupt book id %q: %w", d.BookID, err)
	}
	tx := &domain.Transaction{
		ID:        id,
		UserID:    userID,
		BookID:    bookID,
		BookTitle: d.BookTitle,
		IssueDate: unixToTime(d.IssueDate),
		DueDate:   unixToTime(d.DueDate),
		Status:    domain.TransactionStatus(d.Status),
	}
	if d.ReturnDate != nil {
		t := unixToTime(*d.ReturnDate)
		tx.ReturnDate = &t
	}
	return tx, nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toTransactionDoc(tx)); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d transactionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return d.toDomain()
}

func (r *TransactionRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	return r.list(ctx, bson.M{"user_id": userID.String()})
}

// ListOpen returns open loans with a due date on or before horizon.
func (r *TransactionRepository) ListOpen(ctx context.Context, horizon time.Time) ([]*domain.Transaction, error) {
	return r.list(ctx, bson.M{
		"status":   string(domain.TransactionIssued),
		"due_date": bson.M{"$lte": horizon.Unix()},
	})
}

func (r *TransactionRepository) list(ctx context.Context, filter bson.M) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "issue_date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Transaction
	for cur.Next(ctx) {
		var d transactionDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		tx, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, cur.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": tx.ID.String()}, toTransactionDoc(tx))
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the transactions collection.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "issue_date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
