package contact

import "time"

// Contact is a project-scoped directory entry for the integration effort.
type Contact struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProjectID int64     `json:"project_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}
