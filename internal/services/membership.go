package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
	"github.com/huangang/collabhub/pkg/logger"
)

// MembershipService drives the pending/accepted/rejected lifecycle of project memberships.
type MembershipService struct {
	store store.Store
	guard *CapacityGuard
	queue TaskQueue
}

func NewMembershipService(s store.Store, guard *CapacityGuard, queue TaskQueue) *MembershipService {
	return &MembershipService{store: s, guard: guard, queue: queue}
}

// MemberList is the membership view of one project. Pending is only filled
// for the project owner.
type MemberList struct {
	Accepted []models.ProjectMember `json:"accepted"`
	Pending  []models.ProjectMember `json:"pending,omitempty"`
}

// Apply records a pending application from a student.
func (s *MembershipService) Apply(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err, "load profile")
	}
	if profile == nil || profile.Role != models.UserRoleStudent {
		return nil, fmt.Errorf("only students can apply: %w", ErrForbidden)
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, storeErr(err, "load project")
	}

	if _, err := s.store.GetMembership(ctx, projectID, userID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err, "load membership")
	}

	if project.Status != models.ProjectStatusOpen {
		return nil, ErrProjectNotOpen
	}
	if !project.HasFreeSlot() {
		return nil, ErrProjectFull
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.MemberRoleMember,
		Status:    models.MemberStatusPending,
	}
	if err := s.store.CreateMembership(ctx, member); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost a race with a concurrent Apply for the same pair.
			return nil, ErrAlreadyApplied
		}
		return nil, storeErr(err, "create membership")
	}

	logger.Info().Str("project_id", projectID).Str("user_id", userID).Msg("[Membership] Application submitted")
	s.notify(&NotificationTask{
		UserID:    project.OwnerID,
		ProjectID: projectID,
		Kind:      models.NotificationApplicationSubmitted,
		Message:   fmt.Sprintf("%s applied to join %q", profile.Name, project.Title),
		MemberID:  member.ID,
		ActorID:   userID,
	})
	return member, nil
}

// Accept approves a pending application, consuming one project slot.
func (s *MembershipService) Accept(ctx context.Context, memberID, callerID string) (*models.ProjectMember, error) {
	member, project, err := s.loadForDecision(ctx, memberID, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Accept(ctx, member); err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			logger.Warn().Str("project_id", project.ID).Str("member_id", memberID).Msg("[Membership] Accept refused, project is full")
		}
		return nil, err
	}
	member.Status = models.MemberStatusAccepted

	logger.Info().Str("project_id", project.ID).Str("member_id", memberID).Msg("[Membership] Application accepted")
	s.notify(&NotificationTask{
		UserID:    member.UserID,
		ProjectID: project.ID,
		Kind:      models.NotificationApplicationAccepted,
		Message:   fmt.Sprintf("Your application to %q was accepted", project.Title),
		MemberID:  member.ID,
		ActorID:   callerID,
	})
	return member, nil
}

// Reject declines a pending application. Slots are not affected.
func (s *MembershipService) Reject(ctx context.Context, memberID, callerID string) (*models.ProjectMember, error) {
	member, project, err := s.loadForDecision(ctx, memberID, callerID)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.TransitionMembership(ctx, member.ID, models.MemberStatusPending, models.MemberStatusRejected)
	if err != nil {
		return nil, storeErr(err, "reject member")
	}
	if !ok {
		return nil, ErrNotPending
	}
	member.Status = models.MemberStatusRejected

	logger.Info().Str("project_id", project.ID).Str("member_id", memberID).Msg("[Membership] Application rejected")
	s.notify(&NotificationTask{
		UserID:    member.UserID,
		ProjectID: project.ID,
		Kind:      models.NotificationApplicationRejected,
		Message:   fmt.Sprintf("Your application to %q was declined", project.Title),
		MemberID:  member.ID,
		ActorID:   callerID,
	})
	return member, nil
}

func (s *MembershipService) loadForDecision(ctx context.Context, memberID, callerID string) (*models.ProjectMember, *models.Project, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, nil, storeErr(err, "load member")
	}
	project, err := s.store.GetProject(ctx, member.ProjectID)
	if err != nil {
		return nil, nil, storeErr(err, "load project")
	}
	if project.OwnerID != callerID {
		return nil, nil, fmt.Errorf("only the project owner can decide applications: %w", ErrForbidden)
	}
	if member.Status != models.MemberStatusPending {
		return nil, nil, ErrNotPending
	}
	return member, project, nil
}

// ListMembers returns accepted members to everyone and pending requests to the owner.
func (s *MembershipService) ListMembers(ctx context.Context, projectID, callerID string) (*MemberList, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, storeErr(err, "load project")
	}
	members, err := s.store.GetMembers(ctx, projectID)
	if err != nil {
		return nil, storeErr(err, "list members")
	}

	list := &MemberList{Accepted: []models.ProjectMember{}}
	isOwner := project.OwnerID == callerID
	if isOwner {
		list.Pending = []models.ProjectMember{}
	}
	for _, m := range members {
		switch m.Status {
		case models.MemberStatusAccepted:
			list.Accepted = append(list.Accepted, m)
		case models.MemberStatusPending:
			if isOwner {
				list.Pending = append(list.Pending, m)
			}
		case models.MemberStatusRejected:
		}
	}
	return list, nil
}

// MyApplication returns the caller's membership in a project.
func (s *MembershipService) MyApplication(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	member, err := s.store.GetMembership(ctx, projectID, userID)
	if err != nil {
		return nil, storeErr(err, "load membership")
	}
	return member, nil
}

// notify never fails the calling operation.
func (s *MembershipService) notify(task *NotificationTask) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Errorf("[Membership] Failed to enqueue %s notification: %v", task.Kind, err)
	}
}
