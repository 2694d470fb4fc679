package models

import "strings"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectStatusOpen           ProjectStatus = "open"
	ProjectStatusInProgress     ProjectStatus = "in_progress"
	ProjectStatusNearCompletion ProjectStatus = "near_completion"
	ProjectStatusCompleted      ProjectStatus = "completed"
)

// ProjectStatuses lists every status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusOpen,
	ProjectStatusInProgress,
	ProjectStatusNearCompletion,
	ProjectStatusCompleted,
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusNearCompletion, ProjectStatusCompleted:
		return true
	}
	return false
}

// Label returns the human-facing name shown in the catalog filter.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectStatusOpen:
		return "Open"
	case ProjectStatusInProgress:
		return "In Progress"
	case ProjectStatusNearCompletion:
		return "Near Completion"
	case ProjectStatusCompleted:
		return "Completed"
	}
	return ""
}

// ParseStatusLabel maps a human-facing label back to its canonical status.
func ParseStatusLabel(label string) (ProjectStatus, bool) {
	for _, s := range ProjectStatuses {
		if s.Label() == label {
			return s, true
		}
	}
	return "", false
}

// ParseProjectStatus accepts either a canonical value ("in_progress") or a label ("In Progress").
func ParseProjectStatus(v string) (ProjectStatus, bool) {
	v = strings.TrimSpace(v)
	if s := ProjectStatus(v); s.Valid() {
		return s, true
	}
	return ParseStatusLabel(v)
}

// MemberStatus is the approval state of a project membership.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusAccepted MemberStatus = "accepted"
	MemberStatusRejected MemberStatus = "rejected"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusPending, MemberStatusAccepted, MemberStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined out of s.
func (s MemberStatus) Terminal() bool {
	switch s {
	case MemberStatusAccepted, MemberStatusRejected:
		return true
	}
	return false
}

// MemberRole distinguishes the project owner row from regular members.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) Valid() bool {
	return r == MemberRoleOwner || r == MemberRoleMember
}

// UserRole is the platform role carried by a profile.
type UserRole string

const (
	UserRoleStudent      UserRole = "student"
	UserRoleProjectOwner UserRole = "project_owner"
	UserRoleAdmin        UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleProjectOwner, UserRoleAdmin:
		return true
	}
	return false
}

// CanPublish reports whether profiles with this role may create projects.
func (r UserRole) CanPublish() bool {
	switch r {
	case UserRoleProjectOwner, UserRoleAdmin:
		return true
	}
	return false
}

// Experience is a self-declared skill level.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Domains is the fixed list of project domains offered by the catalog.
var Domains = []string{
	"Web Development",
	"AI/ML",
	"App Development",
	"Blockchain",
	"IoT",
	"Game Development",
	"Data Science",
	"Cybersecurity",
}

// ValidDomain reports whether d is one of Domains.
func ValidDomain(d string) bool {
	for _, known := range Domains {
		if known == d {
			return true
		}
	}
	return false
}
