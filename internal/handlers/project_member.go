package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/response"
)

type ProjectMemberHandler struct {
	memberships *services.MembershipService
}

func NewProjectMemberHandler(memberships *services.MembershipService) *ProjectMemberHandler {
	return &ProjectMemberHandler{memberships: memberships}
}

// List returns accepted members, plus pending requests for the owner
// GET /api/projects/:id/members
func (h *ProjectMemberHandler) List(c *gin.Context) {
	members, err := h.memberships.ListMembers(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, members)
}

// Mine returns the caller's membership in a project, or null
// GET /api/projects/:id/membership
func (h *ProjectMemberHandler) Mine(c *gin.Context) {
	member, err := h.memberships.MyApplication(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if errors.Is(err, services.ErrNotFound) {
		response.Success(c, gin.H{"membership": nil})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"membership": member})
}

// Apply submits a join request
// POST /api/projects/:id/apply
func (h *ProjectMemberHandler) Apply(c *gin.Context) {
	member, err := h.memberships.Apply(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, member)
}

// Accept admits a pending applicant
// POST /api/members/:memberID/accept
func (h *ProjectMemberHandler) Accept(c *gin.Context) {
	member, err := h.memberships.Accept(c.Request.Context(), c.Param("memberID"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, member)
}

// Reject declines a pending applicant
// POST /api/members/:memberID/reject
func (h *ProjectMemberHandler) Reject(c *gin.Context) {
	member, err := h.memberships.Reject(c.Request.Context(), c.Param("memberID"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, member)
}
