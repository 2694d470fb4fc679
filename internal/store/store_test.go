package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormStore_ListProjectsOrderAndPreloads(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	base := time.Now().Add(-time.Hour)
	older := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "Older", CreatedAt: base, Skills: []string{"Go", "React"}})
	newer := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "Newer", CreatedAt: base.Add(time.Minute)})

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, newer.ID, projects[0].ID)
	assert.Equal(t, older.ID, projects[1].ID)
	assert.Equal(t, "Ada", projects[1].OwnerName())
	assert.Equal(t, []string{"Go", "React"}, projects[1].SkillNames())
}

func TestGormStore_GetProjectNotFound(t *testing.T) {
	s := New(testutil.NewTestDB(t))

	_, err := s.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_CreateMembershipDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	testutil.SeedProfile(t, db, "student-1", "Lin", models.UserRoleStudent)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P"})

	first := &models.ProjectMember{ProjectID: project.ID, UserID: "student-1", Role: models.MemberRoleMember, Status: models.MemberStatusPending}
	require.NoError(t, s.CreateMembership(ctx, first))

	second := &models.ProjectMember{ProjectID: project.ID, UserID: "student-1", Role: models.MemberRoleMember, Status: models.MemberStatusPending}
	err := s.CreateMembership(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := s.GetMembership(ctx, project.ID, "student-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestGormStore_TransitionMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	testutil.SeedProfile(t, db, "student-1", "Lin", models.UserRoleStudent)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P"})
	member := testutil.SeedMember(t, db, project.ID, "student-1", models.MemberStatusPending)

	ok, err := s.TransitionMembership(ctx, member.ID, models.MemberStatusPending, models.MemberStatusRejected)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TransitionMembership(ctx, member.ID, models.MemberStatusPending, models.MemberStatusAccepted)
	require.NoError(t, err)
	assert.False(t, ok, "row already left pending")

	got, err := s.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusRejected, got.Status)
	assert.Equal(t, "Lin", got.User.Name)
}

func TestGormStore_IncrementSlotsFilledStopsAtTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P", SlotsTotal: 2, SlotsFilled: 1})

	ok, err := s.IncrementSlotsFilled(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IncrementSlotsFilled(ctx, project.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 2, testutil.ReloadProject(t, db, project.ID).SlotsFilled)
}

func TestGormStore_SetSlotsTotalGuard(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P", SlotsTotal: 5, SlotsFilled: 3})

	ok, err := s.SetSlotsTotal(ctx, project.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.SetSlotsTotal(ctx, project.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, testutil.ReloadProject(t, db, project.ID).SlotsTotal)
}

func TestGormStore_UpdateProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P", Description: "keep"})

	status := models.ProjectStatusInProgress
	progress := 40
	require.NoError(t, s.UpdateProject(ctx, project.ID, ProjectPatch{Status: &status, Progress: &progress}))

	got := testutil.ReloadProject(t, db, project.ID)
	assert.Equal(t, status, got.Status)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, "keep", got.Description)

	assert.ErrorIs(t, s.UpdateProject(ctx, "missing", ProjectPatch{Progress: &progress}), ErrNotFound)
}

func TestGormStore_FindOrCreateSkillCaseInsensitive(t *testing.T) {
	s := New(testutil.NewTestDB(t))
	ctx := context.Background()

	first, err := s.FindOrCreateSkill(ctx, "React")
	require.NoError(t, err)
	second, err := s.FindOrCreateSkill(ctx, "  react ")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "React", second.Name)

	_, err = s.FindOrCreateSkill(ctx, "   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_FindOrCreateSkillKeepsFirstSpelling(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "student-1", "Lin", models.UserRoleStudent, "react")
	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := &models.Project{
		OwnerID:     "owner-1",
		Title:       "Campus Map",
		Description: "Indoor navigation",
		Domain:      "Web Development",
		Status:      models.ProjectStatusOpen,
		Duration:    "3 months",
		SlotsTotal:  1,
	}
	require.NoError(t, s.CreateProject(ctx, project))

	skill, err := s.FindOrCreateSkill(ctx, "React")
	require.NoError(t, err)
	assert.Equal(t, "react", skill.Name)
	require.NoError(t, s.LinkProjectSkill(ctx, project.ID, skill.ID))

	got, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, got.SkillNames())
}

func TestGormStore_CreateProjectAndLinkSkills(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := &models.Project{
		OwnerID:     "owner-1",
		Title:       "Campus Map",
		Description: "Indoor navigation",
		Domain:      "App Development",
		Status:      models.ProjectStatusOpen,
		Duration:    "2 months",
		SlotsTotal:  3,
	}
	require.NoError(t, s.CreateProject(ctx, project))
	require.NotEmpty(t, project.ID)

	skill, err := s.FindOrCreateSkill(ctx, "Flutter")
	require.NoError(t, err)
	require.NoError(t, s.LinkProjectSkill(ctx, project.ID, skill.ID))
	require.NoError(t, s.LinkProjectSkill(ctx, project.ID, skill.ID), "linking twice is a no-op")

	got, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Flutter"}, got.SkillNames())
}

func TestGormStore_SaveProfileKeepsRole(t *testing.T) {
	s := New(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, &models.Profile{ID: "u-1", Name: "Lin", Role: models.UserRoleProjectOwner}))
	require.NoError(t, s.SaveProfile(ctx, &models.Profile{ID: "u-1", Name: "Lin Wei", Bio: "hi", Role: models.UserRoleAdmin, Experience: models.ExperienceAdvanced}))

	got, err := s.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Lin Wei", got.Name)
	assert.Equal(t, models.ExperienceAdvanced, got.Experience)
	assert.Equal(t, models.UserRoleProjectOwner, got.Role)
}

func TestGormStore_SetProfileSkillsReplaces(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "u-1", "Lin", models.UserRoleStudent, "Go")

	py, err := s.FindOrCreateSkill(ctx, "Python")
	require.NoError(t, err)
	sql, err := s.FindOrCreateSkill(ctx, "SQL")
	require.NoError(t, err)
	require.NoError(t, s.SetProfileSkills(ctx, "u-1", []uint{py.ID, sql.ID}))

	got, err := s.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, got.SkillNames())
}

func TestGormStore_WithTxRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "owner-1", "Ada", models.UserRoleProjectOwner)
	project := testutil.SeedProject(t, db, testutil.ProjectSeed{OwnerID: "owner-1", Title: "P", SlotsTotal: 3})

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx Store) error {
		ok, err := tx.IncrementSlotsFilled(ctx, project.ID)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.ReloadProject(t, db, project.ID).SlotsFilled)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, ErrConflict},
		{"pg deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), ErrConflict},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, ErrConflict},
		{"pg other", &pgconn.PgError{Code: "42P01"}, ErrUnavailable},
		{"generic", errors.New("connection refused"), ErrUnavailable},
		{"canceled", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.expected)
		})
	}

	assert.NoError(t, classify(nil))
}
