package domain

// Redemption status values
const (
	RedemptionPending  = "pending"  // Awaiting admin decision
	RedemptionApproved = "approved" // Approved by admin
	RedemptionRejected = "rejected" // Rejected by admin
)

// Redemption Model
type Redemption struct {
	ID     uint   `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID uint   `gorm:"index;not null" json:"user_id"`          // Foreign key to User
	Reward string `gorm:"not null" json:"reward"`                 // Free-text reward description
	Status string `gorm:"not null;default:pending" json:"status"` // pending, approved or rejected
}
