package tables

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a customer to a product. (customer_id, product_id) is unique.
type Favorite struct {
	tableName  struct{}  `bun:"table:favorites,alias:f"`
	ID         uuid.UUID `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID `bun:"customer_id,type:uuid,notnull" json:"customer_id"`
	ProductID  uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	Product    *Product  `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
