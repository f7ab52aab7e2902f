package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"craftlab/careers/internal/matcher"
)

type OpportunityStatus string

const (
	OpportunityOpen   OpportunityStatus = "open"
	OpportunityClosed OpportunityStatus = "closed"
)

type Opportunity struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string            `gorm:"type:text;not null" json:"title"`
	Organization   string            `gorm:"type:text;not null" json:"organization"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	Type           string            `gorm:"type:text;not null;index" json:"type"`
	Location       string            `gorm:"type:text" json:"location"`
	WorkType       string            `gorm:"type:text;index" json:"work_type"`
	Industry       string            `gorm:"type:text" json:"industry,omitempty"`
	RequiredSkills StringList        `json:"required_skills"`
	Status         OpportunityStatus `gorm:"not null;default:'open';index" json:"status"`
	IndexedAt      *time.Time        `json:"indexed_at,omitempty"`
	CreatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

func (o *Opportunity) Matchable() matcher.Opportunity {
	return matcher.Opportunity{
		ID:           o.ID.String(),
		Title:        o.Title,
		Organization: o.Organization,
		Description:  o.Description,
		Type:         matcher.OpportunityType(o.Type),
		Location:     o.Location,
		WorkType:     matcher.WorkType(o.WorkType),
		Industry:     o.Industry,
		Requirements: matcher.Requirements{Skills: []string(o.RequiredSkills)},
	}
}

// IndexText is what gets embedded for semantic search.
func (o *Opportunity) IndexText() string {
	text := o.Title + " at " + o.Organization
	if o.Industry != "" {
		text += " (" + o.Industry + ")"
	}
	if o.Description != "" {
		text += "\n\n" + o.Description
	}
	if len(o.RequiredSkills) > 0 {
		text += "\n\nSkills: " + strings.Join(o.RequiredSkills, ", ")
	}
	return text
}
