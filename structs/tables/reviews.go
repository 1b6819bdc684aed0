package tables

import (
	"time"

	"github.com/google/uuid"
)

// Review is a storefront review. CustomerID is unique: each customer gets
// exactly one review, a second submit is rejected with a conflict.
type Review struct {
	tableName      struct{}  `bun:"table:reviews,alias:r"`
	ID             uuid.UUID `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()" json:"id"`
	CustomerID     uuid.UUID `bun:"customer_id,type:uuid,unique,notnull" json:"customer_id"`
	AuthorName     string    `bun:"author_name,notnull" json:"author_name"`
	AuthorImageURL string    `bun:"author_image_url" json:"author_image_url,omitempty"`
	Rating         int       `bun:"rating,notnull" json:"rating"` // 1..5
	Comment        string    `bun:"comment,notnull" json:"comment"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
}
