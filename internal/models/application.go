package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

type Application struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_pair" json:"profile_id"`
	OpportunityID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_application_pair" json:"opportunity_id"`
	Status        ApplicationStatus `gorm:"not null;default:'pending'" json:"status"`
	CoverLetter   string            `gorm:"type:text" json:"cover_letter,omitempty"`
	MatchScore    int               `json:"match_score"`
	CreatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Profile     Profile     `gorm:"foreignKey:ProfileID" json:"-"`
	Opportunity Opportunity `gorm:"foreignKey:OpportunityID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
