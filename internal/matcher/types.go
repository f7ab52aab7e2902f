package matcher

type UserType string

const (
	UserTypeAttachee   UserType = "attachee"
	UserTypeIntern     UserType = "intern"
	UserTypeApprentice UserType = "apprentice"
	UserTypeVolunteer  UserType = "volunteer"
)

type OpportunityType string

const (
	OpportunityInternship     OpportunityType = "internship"
	OpportunityAttachment     OpportunityType = "attachment"
	OpportunityApprenticeship OpportunityType = "apprenticeship"
	OpportunityVolunteer      OpportunityType = "volunteer"
	OpportunityFullTime       OpportunityType = "full-time"
)

type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeOnsite WorkType = "onsite"
	WorkTypeHybrid WorkType = "hybrid"
)

// Preferences is optional on a profile; a nil value means no preference.
type Preferences struct {
	WorkType   WorkType `json:"work_type,omitempty"`
	Industries []string `json:"industries,omitempty"`
}

type CandidateProfile struct {
	UserType    UserType            `json:"user_type"`
	Skills      map[string][]string `json:"skills"`
	Location    string              `json:"location,omitempty"`
	Preferences *Preferences        `json:"preferences,omitempty"`
}

type Requirements struct {
	Skills []string `json:"skills"`
}

// Opportunity is a posting as seen by the scorer. Identifying fields are
// carried through to the result untouched.
type Opportunity struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Organization string          `json:"organization,omitempty"`
	Description  string          `json:"description,omitempty"`
	Type         OpportunityType `json:"type"`
	Location     string          `json:"location"`
	WorkType     WorkType        `json:"work_type"`
	Industry     string          `json:"industry,omitempty"`
	Requirements Requirements    `json:"requirements"`
}

type MatchResult struct {
	Opportunity
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}
