package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/repository"
)

func TestProjectRepository_Create(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:          "p1",
		TenantID:    "tenant1",
		Name:        "Test Project",
		Description: "A test project",
		CreatedAt:   time.Now(),
	}

	err := repo.Create(ctx, "tenant1", proj)
	require.NoError(t, err)

	// Verify it was created
	retrieved, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.Equal(t, proj.ID, retrieved.ID)
	require.Equal(t, proj.Name, retrieved.Name)
	require.Equal(t, proj.Description, retrieved.Description)
}

func TestProjectRepository_Get(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:        "p1",
		TenantID:  "tenant1",
		Name:      "Test Project",
		CreatedAt: time.Now(),
	}
	err := repo.Create(ctx, "tenant1", proj)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	require.Equal(t, "p1", retrieved.ID)

	// Try to get non-existent project
	_, err = repo.Get(ctx, "tenant1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_TenantIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:        "p1",
		TenantID:  "tenant1",
		Name:      "Tenant 1 Project",
		CreatedAt: time.Now(),
	}
	err := repo.Create(ctx, "tenant1", proj)
	require.NoError(t, err)

	// Tenant 2 should not be able to see tenant 1's project
	_, err = repo.Get(ctx, "tenant2", "p1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_GetDefault(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	// No projects yet
	_, err := repo.GetDefault(ctx, "tenant1")
	require.Equal(t, repository.ErrNotFound, err)

	proj1 := &project.Project{
		ID:        "p1",
		TenantID:  "tenant1",
		Name:      "First Project",
		CreatedAt: time.Now(),
	}
	err = repo.Create(ctx, "tenant1", proj1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond) // Ensure different timestamps

	proj2 := &project.Project{
		ID:        "p2",
		TenantID:  "tenant1",
		Name:      "Second Project",
		CreatedAt: time.Now(),
	}
	err = repo.Create(ctx, "tenant1", proj2)
	require.NoError(t, err)

	// Get default should return the first created project
	defaultProj, err := repo.GetDefault(ctx, "tenant1")
	require.NoError(t, err)
	require.Equal(t, "p1", defaultProj.ID)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj1 := &project.Project{
		ID:        "p1",
		TenantID:  "tenant1",
		Name:      "Project 1",
		CreatedAt: time.Now(),
	}
	err := repo.Create(ctx, "tenant1", proj1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	proj2 := &project.Project{
		ID:        "p2",
		TenantID:  "tenant1",
		Name:      "Project 2",
		CreatedAt: time.Now(),
	}
	err = repo.Create(ctx, "tenant1", proj2)
	require.NoError(t, err)

	summaries, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Should be ordered by created_at DESC (newest first)
	require.Equal(t, "p2", summaries[0].ID)
	require.Equal(t, "p1", summaries[1].ID)

	require.Equal(t, "Project 2", summaries[0].Name)
	require.Equal(t, 0, summaries[0].ModuleCount)
	require.Equal(t, 0, summaries[0].PendingReviews)
	require.Equal(t, 0, summaries[0].ActiveVersion)
}

func TestProjectRepository_List_Counts(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:        "p1",
		TenantID:  "tenant1",
		Name:      "Test Project",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, "tenant1", proj))

	_, err := db.ExecContext(ctx,
		`INSERT INTO modules (id, tenant_id, project_id, ord, status, confidence, nodes, edges)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"m1", "tenant1", "p1", 1, "approved", "low", "[]", "[]")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO review_items (id, tenant_id, project_id, module_id, type, message, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"rv1", "tenant1", "p1", "m1", "low_confidence", "module graded low", "pending")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO snapshots (tenant_id, project_id, version, module_ids, nodes, edges, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"tenant1", "p1", 3, "[]", "[]", "[]", 1)
	require.NoError(t, err)

	summaries, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 1, summaries[0].ModuleCount)
	require.Equal(t, 1, summaries[0].PendingReviews)
	require.Equal(t, 3, summaries[0].ActiveVersion)
}
