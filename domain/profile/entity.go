package profile

import "time"

// Profile is the public information a user shares, including how many
// schedules they have completed as a helper.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Age       int       `json:"age"`
	HelpCount int       `gorm:"not null;default:0" json:"help_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Profile entity.
func (Profile) TableName() string {
	return "profiles"
}
