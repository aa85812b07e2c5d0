package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/repository"
)

func createTestProject(t *testing.T, db *DB, tenantID, projectID string) {
	t.Helper()
	repo := NewProjectRepository(db)
	err := repo.Create(context.Background(), tenantID, &project.Project{
		ID:        projectID,
		TenantID:  tenantID,
		Name:      "Test Project",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func testModule(projectID, id string, ord int) *module.Module {
	return &module.Module{
		ID:         id,
		TenantID:   "tenant1",
		ProjectID:  projectID,
		Order:      ord,
		Status:     module.StatusProposed,
		Confidence: module.ConfidenceHigh,
		Nodes: []graph.Node{
			{ID: "gateway", Type: "gateway", Label: "API Gateway"},
			{ID: "orders_db", Type: "database", Label: "Orders DB", Meta: map[string]any{"engine": "postgres"}},
		},
		Edges: []graph.Edge{
			{From: "gateway", To: "orders_db", Label: "reads"},
		},
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
	}
}

func TestModuleRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")

	mod := testModule("p1", "m1", 1)
	require.NoError(t, repo.Create(ctx, "tenant1", mod))

	retrieved, err := repo.Get(ctx, "tenant1", "m1")
	require.NoError(t, err)
	require.Equal(t, "m1", retrieved.ID)
	require.Equal(t, "p1", retrieved.ProjectID)
	require.Equal(t, module.StatusProposed, retrieved.Status)
	require.Equal(t, module.ConfidenceHigh, retrieved.Confidence)
	require.Len(t, retrieved.Nodes, 2)
	require.Len(t, retrieved.Edges, 1)
	require.Equal(t, "postgres", retrieved.Nodes[1].Meta["engine"])

	_, err = repo.Get(ctx, "tenant1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestModuleRepository_Create_UnknownProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	mod := testModule("missing", "m1", 1)
	err := repo.Create(ctx, "tenant1", mod)
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}

func TestModuleRepository_UpdateStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")
	require.NoError(t, repo.Create(ctx, "tenant1", testModule("p1", "m1", 1)))

	err := repo.UpdateStatus(ctx, "tenant1", "m1", module.StatusApproved)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "tenant1", "m1")
	require.NoError(t, err)
	require.Equal(t, module.StatusApproved, retrieved.Status)

	err = repo.UpdateStatus(ctx, "tenant1", "nonexistent", module.StatusApproved)
	require.Equal(t, repository.ErrNotFound, err)
}

func TestModuleRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")

	// Insert out of order to verify ordering by ord
	require.NoError(t, repo.Create(ctx, "tenant1", testModule("p1", "m2", 2)))
	require.NoError(t, repo.Create(ctx, "tenant1", testModule("p1", "m1", 1)))
	require.NoError(t, repo.Create(ctx, "tenant1", testModule("p1", "m3", 3)))

	require.NoError(t, repo.UpdateStatus(ctx, "tenant1", "m1", module.StatusApproved))
	require.NoError(t, repo.UpdateStatus(ctx, "tenant1", "m3", module.StatusApproved))

	refs, err := repo.List(ctx, "tenant1", module.ListModulesOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, refs, 3)
	require.Equal(t, "m1", refs[0].ID)
	require.Equal(t, "m2", refs[1].ID)
	require.Equal(t, "m3", refs[2].ID)
	require.Equal(t, 2, refs[0].NodeCount)
	require.Equal(t, 1, refs[0].EdgeCount)

	// Status filter keeps submission order
	approved, err := repo.List(ctx, "tenant1", module.ListModulesOptions{
		ProjectID: "p1",
		Statuses:  []module.Status{module.StatusApproved},
	})
	require.NoError(t, err)
	require.Len(t, approved, 2)
	require.Equal(t, "m1", approved[0].ID)
	require.Equal(t, "m3", approved[1].ID)

	// Limit
	limited, err := repo.List(ctx, "tenant1", module.ListModulesOptions{ProjectID: "p1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestModuleRepository_TenantIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")
	require.NoError(t, repo.Create(ctx, "tenant1", testModule("p1", "m1", 1)))

	_, err := repo.Get(ctx, "tenant2", "m1")
	require.Equal(t, repository.ErrNotFound, err)

	refs, err := repo.List(ctx, "tenant2", module.ListModulesOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Empty(t, refs)
}
