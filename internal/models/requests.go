package models

import "craftlab/careers/internal/matcher"

type ProfileRequest struct {
	FullName            string              `json:"full_name"`
	Email               string              `json:"email"`
	UserType            string              `json:"user_type"`
	Bio                 string              `json:"bio"`
	Location            string              `json:"location"`
	Skills              map[string][]string `json:"skills"`
	PreferredWorkType   string              `json:"preferred_work_type"`
	PreferredIndustries []string            `json:"preferred_industries"`
}

type OpportunityRequest struct {
	Title          string   `json:"title"`
	Organization   string   `json:"organization"`
	Description    string   `json:"description"`
	Type           string   `json:"type"`
	Location       string   `json:"location"`
	WorkType       string   `json:"work_type"`
	Industry       string   `json:"industry"`
	RequiredSkills []string `json:"required_skills"`
}

type OpportunityStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationRequest struct {
	ProfileID     string `json:"profile_id"`
	OpportunityID string `json:"opportunity_id"`
	CoverLetter   string `json:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

type MessageRequest struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
}

type MatchesResponse struct {
	ProfileID string                `json:"profile_id"`
	Total     int                   `json:"total"`
	Matches   []matcher.MatchResult `json:"matches"`
}

type InsightResponse struct {
	Match     matcher.MatchResult `json:"match"`
	Summary   string              `json:"summary"`
	Strengths []string            `json:"strengths"`
	Gaps      []string            `json:"gaps"`
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Results []matcher.MatchResult `json:"results"`
}
