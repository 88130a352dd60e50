package domain

// View Model. Append-only: one row per successful ad view. The most recent
// row per user drives the cooldown check.
type View struct {
	ID        uint  `gorm:"primaryKey" json:"id"`     // Primary key
	UserID    uint  `gorm:"index;not null" json:"user_id"` // Foreign key to User
	AdID      uint  `gorm:"not null" json:"ad_id"`    // Foreign key to Ad
	Timestamp int64 `gorm:"not null" json:"timestamp"` // View time in epoch milliseconds
}
