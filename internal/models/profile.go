package models

import (
	"time"

	"github.com/google/uuid"

	"craftlab/careers/internal/matcher"
)

type Profile struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName            string     `gorm:"type:text;not null" json:"full_name"`
	Email               string     `gorm:"type:text;uniqueIndex" json:"email"`
	UserType            string     `gorm:"type:text;not null" json:"user_type"`
	Bio                 string     `gorm:"type:text" json:"bio,omitempty"`
	Location            string     `gorm:"type:text" json:"location,omitempty"`
	Skills              SkillSet   `json:"skills"`
	PreferredWorkType   string     `gorm:"type:text" json:"preferred_work_type,omitempty"`
	PreferredIndustries StringList `json:"preferred_industries,omitempty"`
	CreatedAt           time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Candidate converts the stored profile into the scorer's view of it.
// Preferences stay nil when the user has not set any.
func (p *Profile) Candidate() matcher.CandidateProfile {
	candidate := matcher.CandidateProfile{
		UserType: matcher.UserType(p.UserType),
		Skills:   map[string][]string(p.Skills),
		Location: p.Location,
	}

	if p.PreferredWorkType != "" || len(p.PreferredIndustries) > 0 {
		candidate.Preferences = &matcher.Preferences{
			WorkType:   matcher.WorkType(p.PreferredWorkType),
			Industries: []string(p.PreferredIndustries),
		}
	}

	return candidate
}
