package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/response"
)

type AssistantHandler struct {
	assistant *services.AssistantService
}

func NewAssistantHandler(assistant *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type describeRequest struct {
	Idea string `json:"idea"`
}

type breakdownRequest struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type matchRequest struct {
	ProjectSkills []string `json:"projectSkills"`
	StudentSkills []string `json:"studentSkills"`
}

// Describe expands a short idea into a project description
// POST /api/assistant/describe
func (h *AssistantHandler) Describe(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	desc, err := h.assistant.DescribeIdea(c.Request.Context(), req.Idea)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, desc)
}

// Breakdown splits a description into phases and milestones
// POST /api/assistant/breakdown
func (h *AssistantHandler) Breakdown(c *gin.Context) {
	var req breakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	breakdown, err := h.assistant.BreakdownTasks(c.Request.Context(), req.Description, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, breakdown)
}

// Match scores two ad-hoc skill lists
// POST /api/assistant/match
func (h *AssistantHandler) Match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.assistant.MatchSkills(req.ProjectSkills, req.StudentSkills)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
