package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/middleware"
	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/services"
	"github.com/huangang/collabhub/pkg/response"
)

type ProjectHandler struct {
	catalog  *services.CatalogService
	projects *services.ProjectService
	matcher  *services.MatchService
}

func NewProjectHandler(catalog *services.CatalogService, projects *services.ProjectService, matcher *services.MatchService) *ProjectHandler {
	return &ProjectHandler{catalog: catalog, projects: projects, matcher: matcher}
}

// ProjectView is the catalog card shape of a project.
type ProjectView struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Domain      string               `json:"domain"`
	Status      models.ProjectStatus `json:"status"`
	StatusLabel string               `json:"status_label"`
	Duration    string               `json:"duration"`
	Progress    int                  `json:"progress"`
	SlotsTotal  int                  `json:"slots_total"`
	SlotsFilled int                  `json:"slots_filled"`
	OwnerID     string               `json:"owner_id"`
	OwnerName   string               `json:"owner_name"`
	Skills      []string             `json:"skills"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toProjectView(p *models.Project) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Domain:      p.Domain,
		Status:      p.Status,
		StatusLabel: p.Status.Label(),
		Duration:    p.Duration,
		Progress:    p.Progress,
		SlotsTotal:  p.SlotsTotal,
		SlotsFilled: p.SlotsFilled,
		OwnerID:     p.OwnerID,
		OwnerName:   p.OwnerName(),
		Skills:      p.SkillNames(),
		CreatedAt:   p.CreatedAt,
	}
}

// List returns the filtered and sorted catalog
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var q services.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projects, err := h.catalog.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, toProjectView(&projects[i]))
	}
	response.List(c, views)
}

// Options returns the filter bar choices
// GET /api/catalog/options
func (h *ProjectHandler) Options(c *gin.Context) {
	response.Success(c, h.catalog.Options())
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, toProjectView(project))
}

// Create publishes a new project owned by the caller
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projects.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, toProjectView(project))
}

// Update applies owner edits
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projects.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, toProjectView(project))
}

// Match scores the caller's skills against the project
// GET /api/projects/:id/match
func (h *ProjectHandler) Match(c *gin.Context) {
	result, err := h.matcher.MatchForUser(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
