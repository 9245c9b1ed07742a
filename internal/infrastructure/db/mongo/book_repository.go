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
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

const collectionBooks = "books"

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

type bookDoc struct {
	ID          string `bson:"_id"`
	ISBN        string `bson:"isbn"`
	Title       string `bson:"title"`
	Author      string `bson:"author,omitempty"`
	TotalCopies int    `bson:"total_copies"`
	Available   int    `bson:"available"`
	CreatedAt   int64  `bson:"created_at"`
}

func toBookDoc(b *domain.Book) bookDoc {
	return bookDoc{
		ID:          b.ID.String(),
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		TotalCopies: b.TotalCopies,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt.Unix(),
	}
}

func (d bookDoc) toDomain() (*domain.Book, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt book id %q: %w", d.ID, err)
	}
	return &domain.Book{
		ID:          id,
		ISBN:        d.ISBN,
		Title:       d.Title,
		Author:      d.Author,
		TotalCopies: d.TotalCopies,
		Available:   d.Available,
		CreatedAt:   unixToTime(d.CreatedAt),
	}, nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toBookDoc(book))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBookExists
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return r.findOne(ctx, bson.M{"isbn": isbn})
}

func (r *BookRepository) findOne(ctx context.Context, filter bson.M) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d bookDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return d.toDomain()
}

// List returns a page of books matching filter and the total count.
func (r *BookRepository) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		pattern := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"author": pattern},
			{"isbn": pattern},
		}
	}
	if filter.AvailableOnly {
		query["available"] = bson.M{"$gt": 0}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var books []*domain.Book
	for cur.Next(ctx) {
		var d bookDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, fmt.Errorf("decode book: %w", err)
		}
		b, err := d.toDomain()
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// AdjustAvailable atomically adds delta to the available count. The filter
// refuses decrements that would take the count below zero, so concurrent
// borrows can never oversell the last copy.
func (r *BookRepository) AdjustAvailable(ctx context.Context, id uuid.UUID, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"_id": id.String()}
	if delta < 0 {
		query["available"] = bson.M{"$gte": -delta}
	}

	res, err := r.col.UpdateOne(ctx, query, bson.M{"$inc": bson.M{"available": delta}})
	if err != nil {
		return fmt.Errorf("adjust availability: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing book from an exhausted one.
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrBookUnavailable
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the books collection.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isbn", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
