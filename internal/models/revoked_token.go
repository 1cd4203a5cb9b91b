package models

import "time"

// RevokedToken is an entry of the token revocation list. A token whose JTI
// is present here never resolves again, even before ExpiresAt.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;column:jti;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt time.Time
}
