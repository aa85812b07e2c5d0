package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stackdraft/canon/internal/domain/audit"
)

func TestAuditRepository_AppendAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")

	moduleID := "m1"
	entry := &audit.Entry{
		ProjectID: "p1",
		ModuleID:  &moduleID,
		Action:    audit.ActionModuleMerged,
		Actor:     "agent-7",
		Metadata:  `{"version":1}`,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Append(ctx, "tenant1", entry))
	require.NotZero(t, entry.ID)

	entries, err := repo.List(ctx, "tenant1", audit.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, audit.ActionModuleMerged, entries[0].Action)
	require.Equal(t, "agent-7", entries[0].Actor)
	require.NotNil(t, entries[0].ModuleID)
	require.Equal(t, "m1", *entries[0].ModuleID)
	require.Equal(t, `{"version":1}`, entries[0].Metadata)
}

func TestAuditRepository_List_Filters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	createTestProject(t, db, "tenant1", "p1")

	m1, m2 := "m1", "m2"
	base := time.Now()
	for i, e := range []*audit.Entry{
		{ProjectID: "p1", ModuleID: &m1, Action: audit.ActionModuleProposed, CreatedAt: base},
		{ProjectID: "p1", ModuleID: &m1, Action: audit.ActionModuleMerged, CreatedAt: base.Add(time.Second)},
		{ProjectID: "p1", ModuleID: &m2, Action: audit.ActionConflictDetected, CreatedAt: base.Add(2 * time.Second)},
		{ProjectID: "p1", Action: audit.ActionRollback, CreatedAt: base.Add(3 * time.Second)},
	} {
		require.NoError(t, repo.Append(ctx, "tenant1", e), "entry %d", i)
	}

	// Newest first
	entries, err := repo.List(ctx, "tenant1", audit.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, audit.ActionRollback, entries[0].Action)
	require.Nil(t, entries[0].ModuleID)

	// Module filter
	entries, err = repo.List(ctx, "tenant1", audit.ListOptions{ProjectID: "p1", ModuleID: &m1})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Action filter
	action := audit.ActionConflictDetected
	entries, err = repo.List(ctx, "tenant1", audit.ListOptions{ProjectID: "p1", Action: &action})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "m2", *entries[0].ModuleID)

	// Limit
	entries, err = repo.List(ctx, "tenant1", audit.ListOptions{ProjectID: "p1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
