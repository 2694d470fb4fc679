package services

import (
	"context"
	"sort"
	"strings"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
)

// FilterAll disables the domain or status filter.
const FilterAll = "All"

// SortKey orders the catalog view.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortProgress   SortKey = "progress"
	SortPopularity SortKey = "popularity"
)

// CatalogFilter holds the catalog view parameters. An empty Status or Domain
// is treated like FilterAll.
type CatalogFilter struct {
	Query  string
	Domain string
	Status models.ProjectStatus
	SortBy SortKey
}

// FilterAndSort derives the catalog view from a project snapshot. The input
// slice is never modified.
func FilterAndSort(projects []models.Project, f CatalogFilter) []models.Project {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	domain := f.Domain
	if domain == FilterAll {
		domain = ""
	}

	out := make([]models.Project, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if domain != "" && p.Domain != domain {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}

	if less := lessFunc(f.SortBy, out); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func matchesQuery(p *models.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Domain), query) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s.Name), query) {
			return true
		}
	}
	return false
}

// lessFunc returns nil for unknown keys, leaving the snapshot order intact.
func lessFunc(key SortKey, ps []models.Project) func(i, j int) bool {
	switch key {
	case SortNewest:
		return func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) }
	case SortProgress:
		return func(i, j int) bool { return ps[i].Progress > ps[j].Progress }
	case SortPopularity:
		return func(i, j int) bool { return ps[i].SlotsFilled > ps[j].SlotsFilled }
	}
	return nil
}

// CatalogQuery is the raw, user-supplied form of CatalogFilter.
type CatalogQuery struct {
	Query  string `form:"q"`
	Domain string `form:"domain"`
	Status string `form:"status"`
	Sort   string `form:"sort"`
}

// CatalogOptions lists the choices offered by the catalog filter bar.
type CatalogOptions struct {
	Domains  []string       `json:"domains"`
	Statuses []StatusOption `json:"statuses"`
	Sorts    []SortOption   `json:"sorts"`
}

type StatusOption struct {
	Value models.ProjectStatus `json:"value"`
	Label string               `json:"label"`
}

type SortOption struct {
	Value SortKey `json:"value"`
	Label string  `json:"label"`
}

type CatalogService struct {
	store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s}
}

// ParseFilter validates a raw query. Unknown sort keys are kept and ignored
// by the engine; unknown statuses are rejected.
func ParseFilter(q CatalogQuery) (CatalogFilter, error) {
	f := CatalogFilter{
		Query:  q.Query,
		Domain: strings.TrimSpace(q.Domain),
		SortBy: SortKey(strings.TrimSpace(q.Sort)),
	}

	status := strings.TrimSpace(q.Status)
	if status != "" && status != FilterAll {
		parsed, ok := models.ParseProjectStatus(status)
		if !ok {
			return CatalogFilter{}, invalid("status", "unknown project status "+status)
		}
		f.Status = parsed
	}
	return f, nil
}

// List loads a fresh snapshot and returns the filtered, sorted view.
func (s *CatalogService) List(ctx context.Context, q CatalogQuery) ([]models.Project, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, storeErr(err, "list projects")
	}
	return FilterAndSort(projects, f), nil
}

func (s *CatalogService) Options() CatalogOptions {
	opts := CatalogOptions{
		Domains: append([]string(nil), models.Domains...),
		Sorts: []SortOption{
			{Value: SortNewest, Label: "Newest"},
			{Value: SortProgress, Label: "Progress"},
			{Value: SortPopularity, Label: "Popularity"},
		},
	}
	for _, st := range models.ProjectStatuses {
		opts.Statuses = append(opts.Statuses, StatusOption{Value: st, Label: st.Label()})
	}
	return opts
}
