package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/huangang/collabhub/internal/store"
)

// MatchTier is the coarse rating derived from a match percentage.
type MatchTier string

const (
	MatchTierExcellent MatchTier = "excellent"
	MatchTierGood      MatchTier = "good"
	MatchTierModerate  MatchTier = "moderate"
	MatchTierLow       MatchTier = "low"
	MatchTierMinimal   MatchTier = "minimal"
)

// MatchResult describes how a student's skills cover a project's requirements.
type MatchResult struct {
	MatchPercentage int       `json:"matchPercentage"`
	Explanation     string    `json:"explanation"`
	Tier            MatchTier `json:"tier"`
	MatchingSkills  []string  `json:"matchingSkills"`
	MissingSkills   []string  `json:"missingSkills"`
	ExtraSkills     []string  `json:"extraSkills"`
}

var tierExplanations = map[MatchTier]string{
	MatchTierExcellent: "Excellent match! You have most of the required skills for this project.",
	MatchTierGood:      "Good match! You have many of the required skills. Consider learning the missing skills.",
	MatchTierModerate:  "Moderate match. You have some relevant skills, but may need to learn several new technologies.",
	MatchTierLow:       "Low match. This project requires skills you may need to develop first.",
	MatchTierMinimal:   "Minimal match. Consider building foundational skills before applying to this project.",
}

// TierFor maps a percentage to its tier. Thresholds are inclusive lower bounds.
func TierFor(percentage int) MatchTier {
	switch {
	case percentage >= 80:
		return MatchTierExcellent
	case percentage >= 60:
		return MatchTierGood
	case percentage >= 40:
		return MatchTierModerate
	case percentage >= 20:
		return MatchTierLow
	default:
		return MatchTierMinimal
	}
}

// skillSet maps case-folded keys to a display spelling.
type skillSet map[string]string

func newSkillSet(names []string) skillSet {
	set := make(skillSet, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		// Keep the smallest spelling so the output is independent of input order.
		if prev, ok := set[key]; !ok || name < prev {
			set[key] = name
		}
	}
	return set
}

func (s skillSet) sortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchSkills compares two skill lists case-insensitively with set semantics.
// Matching and extra skills keep the student's spelling, missing skills the project's.
func MatchSkills(projectSkills, studentSkills []string) MatchResult {
	project := newSkillSet(projectSkills)
	student := newSkillSet(studentSkills)

	result := MatchResult{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		ExtraSkills:    []string{},
	}

	for _, key := range project.sortedKeys() {
		if _, ok := student[key]; ok {
			result.MatchingSkills = append(result.MatchingSkills, student[key])
		} else {
			result.MissingSkills = append(result.MissingSkills, project[key])
		}
	}
	for _, key := range student.sortedKeys() {
		if _, ok := project[key]; !ok {
			result.ExtraSkills = append(result.ExtraSkills, student[key])
		}
	}

	if len(project) > 0 {
		result.MatchPercentage = int(math.Round(100 * float64(len(result.MatchingSkills)) / float64(len(project))))
	}
	result.Tier = TierFor(result.MatchPercentage)
	result.Explanation = tierExplanations[result.Tier]
	return result
}

// MatchService resolves stored skill sets and runs the matcher on them.
type MatchService struct {
	store store.Store
}

func NewMatchService(s store.Store) *MatchService {
	return &MatchService{store: s}
}

// MatchForUser compares the project's required skills with the user's profile skills.
func (s *MatchService) MatchForUser(ctx context.Context, projectID, userID string) (*MatchResult, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, storeErr(err, "load project")
	}
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "load profile")
	}

	result := MatchSkills(project.SkillNames(), profile.SkillNames())
	return &result, nil
}
