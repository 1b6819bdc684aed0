package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Company     string    `bun:"company,notnull" json:"company"`
	Description string    `bun:"description,notnull" json:"description"`
	Category    string    `bun:"category,notnull" json:"category"`
	Options     []string  `bun:"options,array" json:"options,omitempty"` // size/color variants, free-form
	Tags        []string  `bun:"tags,array,notnull" json:"tags"`
	Price       uint64    `bun:"price,notnull" json:"price"` // stored in cents
	// Image denormalizes the primary image URL so list pages never join.
	Image     string         `bun:"image,notnull" json:"image"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`
	Images    []ProductImage `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"` // slice is nil if not preloaded
}

// ProductImage is one gallery entry. Position preserves the order the admin
// arranged the gallery in; exactly one row per product has IsPrimary set.
type ProductImage struct {
	tableName struct{}  `bun:"table:product_images,alias:pi"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	AltText   string    `bun:"alt_text" json:"alt_text,omitempty"` // optional, empty string if none
	IsPrimary bool      `bun:"is_primary,notnull" json:"is_primary"`
	Position  int       `bun:"position,notnull" json:"position"`
}
