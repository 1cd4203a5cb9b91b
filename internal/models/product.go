package models

import "time"

// Product represents an item in the catalogue. UserID is the owner and is
// nil for products that were created without an authenticated user.
type Product struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string    `json:"name" gorm:"type:varchar(20);not null"`
	Description    string    `json:"description" gorm:"type:varchar(255);not null"`
	Quantity       int64     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	AmountSold     int64     `json:"amount_sold"`
	UserID         *string   `json:"user_id" gorm:"type:varchar(36);index"`
	User           *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnerID returns the id of the owning user, or nil when the product has no owner.
func (p *Product) OwnerID() *string {
	return p.UserID
}
