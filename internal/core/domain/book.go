package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. Available tracks copies currently on the shelf;
// it never exceeds TotalCopies.
type Book struct {
	ID          uuid.UUID `json:"id"`
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	TotalCopies int       `json:"total_copies"`
	Available   int       `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
