package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
	"github.com/huangang/collabhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []models.Project {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.Project{
		{
			ID: "p1", Title: "Blockchain Voting", Description: "Secure ballots", Domain: "Blockchain",
			Status: models.ProjectStatusOpen, Progress: 10, SlotsFilled: 1, CreatedAt: base,
			Skills: []models.Skill{{Name: "Solidity"}},
		},
		{
			ID: "p2", Title: "Campus Map", Description: "Indoor navigation", Domain: "App Development",
			Status: models.ProjectStatusInProgress, Progress: 90, SlotsFilled: 3, CreatedAt: base.Add(2 * time.Hour),
			Skills: []models.Skill{{Name: "Flutter"}, {Name: "Firebase"}},
		},
		{
			ID: "p3", Title: "Study Buddy", Description: "Matches study partners", Domain: "AI/ML",
			Status: models.ProjectStatusOpen, Progress: 50, SlotsFilled: 3, CreatedAt: base.Add(time.Hour),
			Skills: []models.Skill{{Name: "Python"}},
		},
	}
}

func ids(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterAndSort_Search(t *testing.T) {
	tests := []struct {
		query    string
		expected []string
	}{
		{"block", []string{"p1"}},
		{"NAVIGATION", []string{"p2"}},
		{"ai/ml", []string{"p3"}},
		{"firebase", []string{"p2"}},
		{"", []string{"p1", "p2", "p3"}},
		{"nothing-matches", []string{}},
	}

	for _, tt := range tests {
		got := ids(FilterAndSort(sampleProjects(), CatalogFilter{Query: tt.query}))
		assert.Equal(t, tt.expected, got, "query %q", tt.query)
	}
}

func TestFilterAndSort_DomainAndStatus(t *testing.T) {
	projects := sampleProjects()

	assert.Equal(t, []string{"p2"}, ids(FilterAndSort(projects, CatalogFilter{Domain: "App Development"})))
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(FilterAndSort(projects, CatalogFilter{Domain: FilterAll})))
	assert.Equal(t, []string{"p1", "p3"}, ids(FilterAndSort(projects, CatalogFilter{Status: models.ProjectStatusOpen})))
	assert.Empty(t, FilterAndSort(projects, CatalogFilter{Domain: "app development"}), "domain match is exact")
}

func TestFilterAndSort_Sort(t *testing.T) {
	projects := sampleProjects()

	byProgress := FilterAndSort(projects, CatalogFilter{SortBy: SortProgress})
	var progress []int
	for _, p := range byProgress {
		progress = append(progress, p.Progress)
	}
	assert.Equal(t, []int{90, 50, 10}, progress)

	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(FilterAndSort(projects, CatalogFilter{SortBy: SortNewest})))
	// p2 and p3 tie on slots_filled; the stable sort keeps snapshot order.
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(FilterAndSort(projects, CatalogFilter{SortBy: SortPopularity})))
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(FilterAndSort(projects, CatalogFilter{SortBy: "alphabetical"})))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	projects := sampleProjects()
	before := ids(projects)

	_ = FilterAndSort(projects, CatalogFilter{SortBy: SortProgress})
	assert.Equal(t, before, ids(projects))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(CatalogQuery{Status: "In Progress", Sort: "progress"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInProgress, f.Status)
	assert.Equal(t, SortProgress, f.SortBy)

	f, err = ParseFilter(CatalogQuery{Status: "near_completion"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusNearCompletion, f.Status)

	f, err = ParseFilter(CatalogQuery{Status: FilterAll})
	require.NoError(t, err)
	assert.Empty(t, f.Status)

	_, err = ParseFilter(CatalogQuery{Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "status", ve.Field)
}

func TestCatalogService_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCatalogService(store.New(db))
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	base := time.Now().Add(-time.Hour)
	testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "Blockchain Voting", Domain: "Blockchain", CreatedAt: base})
	testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "Campus Map", Status: models.ProjectStatusCompleted, CreatedAt: base.Add(time.Minute), Skills: []string{"Flutter"}})

	all, err := svc.List(ctx, CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Campus Map", all[0].Title)
	assert.Equal(t, "Ada", all[0].OwnerName())

	got, err := svc.List(ctx, CatalogQuery{Query: "flutter", Status: "Completed"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Campus Map", got[0].Title)

	_, err = svc.List(ctx, CatalogQuery{Status: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_Options(t *testing.T) {
	opts := NewCatalogService(nil).Options()

	assert.Equal(t, models.Domains, opts.Domains)
	require.Len(t, opts.Statuses, 4)
	assert.Equal(t, "Near Completion", opts.Statuses[2].Label)
	assert.Equal(t, SortNewest, opts.Sorts[0].Value)
}
