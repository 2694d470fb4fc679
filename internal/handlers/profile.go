package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/response"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me returns the caller's profile
// GET /api/profiles/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, profile)
}

// UpdateMe creates or updates the caller's profile. The role is taken from
// the token on first save and never changed afterwards.
// PUT /api/profiles/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.Save(c.Request.Context(), middleware.GetUserID(c), middleware.GetRole(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, profile)
}
