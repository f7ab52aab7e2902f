// Package matcher scores opportunities against a candidate profile.
//
// Scoring is a fixed, weighted point system over five components (type,
// skills, location, work type, industry) summing to at most 100. It holds no
// state and is safe for concurrent use.
package matcher

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	maxTypePoints     = 25.0
	maxSkillsPoints   = 35.0
	locationPoints    = 15.0
	flexiblePoints    = 10.0
	workTypePoints    = 15.0
	industryPoints    = 10.0
	maxScore          = 100.0
	maxReasons        = 4
	typeReasonMinimum = 15.0

	// Used when an opportunity lists no required skills.
	defaultSkillsPercentage = 50.0
)

type compatibility struct {
	points float64
	reason string
}

var defaultCompatibility = compatibility{5, "General opportunity match"}

var typeCompatibility = map[UserType]map[OpportunityType]compatibility{
	UserTypeAttachee: {
		OpportunityAttachment:     {25, "Perfect match for industrial attachment"},
		OpportunityInternship:     {20, "Internship suits attachment goals"},
		OpportunityApprenticeship: {15, "Apprenticeship offers hands-on training"},
		OpportunityVolunteer:      {10, "Volunteering builds practical experience"},
		OpportunityFullTime:       {8, "Full-time role may exceed attachment scope"},
	},
	UserTypeIntern: {
		OpportunityInternship:     {25, "Perfect internship match"},
		OpportunityAttachment:     {20, "Attachment offers internship-level experience"},
		OpportunityApprenticeship: {15, "Apprenticeship provides structured learning"},
		OpportunityFullTime:       {12, "Full-time role could follow your internship"},
		OpportunityVolunteer:      {10, "Volunteering adds relevant experience"},
	},
	UserTypeApprentice: {
		OpportunityApprenticeship: {25, "Perfect apprenticeship match"},
		OpportunityFullTime:       {18, "Full-time role builds on apprenticeship skills"},
		OpportunityInternship:     {15, "Internship offers skill development"},
		OpportunityAttachment:     {12, "Attachment provides practical exposure"},
		OpportunityVolunteer:      {8, "Volunteering offers limited skill progression"},
	},
	UserTypeVolunteer: {
		OpportunityVolunteer:      {25, "Perfect volunteer opportunity"},
		OpportunityInternship:     {12, "Internship extends volunteer experience"},
		OpportunityApprenticeship: {10, "Apprenticeship requires longer commitment"},
		OpportunityAttachment:     {8, "Attachment is geared to students on placement"},
		OpportunityFullTime:       {8, "Full-time role differs from volunteering"},
	},
}

// Score computes the match score and reasons for one opportunity.
func Score(profile CandidateProfile, opp Opportunity) MatchResult {
	var (
		total   float64
		reasons []string
	)

	points, reason := scoreType(profile.UserType, opp.Type)
	total += points
	if reason != "" {
		reasons = append(reasons, reason)
	}

	points, skillReasons := scoreSkills(profile.Skills, opp.Requirements.Skills)
	total += points
	reasons = append(reasons, skillReasons...)

	for _, component := range []func(CandidateProfile, Opportunity) (float64, string){
		scoreLocation,
		scoreWorkType,
		scoreIndustry,
	} {
		points, reason := component(profile, opp)
		total += points
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	return MatchResult{
		Opportunity:  opp,
		MatchScore:   int(math.Round(math.Min(total, maxScore))),
		MatchReasons: reasons,
	}
}

// Rank scores every opportunity and orders them by descending score.
// Opportunities with equal scores keep their input order.
func Rank(profile CandidateProfile, opportunities []Opportunity) []MatchResult {
	results := make([]MatchResult, len(opportunities))
	for i, opp := range opportunities {
		results[i] = Score(profile, opp)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}

func scoreType(userType UserType, oppType OpportunityType) (float64, string) {
	entry, ok := typeCompatibility[userType][oppType]
	if !ok {
		entry = defaultCompatibility
	}
	if entry.points > typeReasonMinimum {
		return entry.points, entry.reason
	}
	return entry.points, ""
}

func scoreSkills(skills map[string][]string, required []string) (float64, []string) {
	tokens := candidateTokens(skills)

	matched := 0
	for _, req := range required {
		if skillMatches(strings.ToLower(req), tokens) {
			matched++
		}
	}

	percentage := defaultSkillsPercentage
	if len(required) > 0 {
		percentage = float64(matched) / float64(len(required)) * 100
	}

	var reasons []string
	if matched > 0 {
		reasons = append(reasons, fmt.Sprintf("%d of %d required skills match", matched, len(required)))
	}

	switch {
	case percentage >= 80:
		reasons = append(reasons, "Excellent skills alignment")
	case percentage >= 60:
		reasons = append(reasons, "Good skills match")
	case percentage >= 40:
		reasons = append(reasons, "Moderate skills overlap")
	}

	return math.Min(percentage/100*maxSkillsPoints, maxSkillsPoints), reasons
}

// candidateTokens flattens every skill category into a lower-cased set.
// Tokens are otherwise taken as written: an empty or padded skill still
// takes part in the substring test.
func candidateTokens(skills map[string][]string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, list := range skills {
		for _, skill := range list {
			tokens[strings.ToLower(skill)] = struct{}{}
		}
	}
	return tokens
}

func skillMatches(required string, tokens map[string]struct{}) bool {
	for token := range tokens {
		if strings.Contains(required, token) || strings.Contains(token, required) {
			return true
		}
	}
	return false
}

func scoreLocation(profile CandidateProfile, opp Opportunity) (float64, string) {
	if profile.Location != "" && strings.Contains(opp.Location, profile.Location) {
		return locationPoints, "Location matches your preference"
	}
	if opp.WorkType == WorkTypeRemote || opp.WorkType == WorkTypeHybrid {
		return flexiblePoints, "Offers flexible work arrangement"
	}
	return 0, ""
}

func scoreWorkType(profile CandidateProfile, opp Opportunity) (float64, string) {
	if profile.Preferences == nil || profile.Preferences.WorkType == "" {
		return 0, ""
	}
	if profile.Preferences.WorkType == opp.WorkType {
		return workTypePoints, "Work type matches your preference"
	}
	return 0, ""
}

func scoreIndustry(profile CandidateProfile, opp Opportunity) (float64, string) {
	if profile.Preferences == nil || opp.Industry == "" {
		return 0, ""
	}
	for _, industry := range profile.Preferences.Industries {
		if industry == opp.Industry {
			return industryPoints, "Industry aligns with your interests"
		}
	}
	return 0, ""
}
