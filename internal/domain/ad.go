package domain

// Ad Model
type Ad struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                    // Primary key
	Title        string `gorm:"not null" json:"title"`                   // Ad title
	URL          string `gorm:"not null" json:"url"`                     // Ad content URL
	Duration     int    `json:"duration"`                                // Duration in seconds (informational)
	RewardPoints int    `gorm:"not null;default:0" json:"reward_points"` // Points credited per view
}
