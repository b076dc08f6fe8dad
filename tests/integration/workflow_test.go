package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/casebandit/casebandit/internal/codec"
	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/listview"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/vault"
)

// TestCaseWorkflow walks the whole lifecycle over a real badger store:
// create cases, save and edit records, filter the list, export, wipe,
// and restore from the export.
func TestCaseWorkflow(t *testing.T) {
	ctx := context.Background()

	badger, err := kv.OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = badger.Close() }()

	store := vault.New(badger, logger.New("error", false))

	// Two cases; the first is default and active.
	fraud, err := store.CreateCase(ctx, "Fraud Q2")
	require.NoError(t, err)
	archive, err := store.CreateCase(ctx, "Archive")
	require.NoError(t, err)

	// Save three records into the fraud case.
	_, _, err = store.UpsertURL(ctx, fraud.ID, domain.URLRecord{
		URL: "https://shop.example/checkout", Title: "Fake checkout",
		Status: domain.StatusTodo, Priority: domain.PriorityHigh,
		Tags: []string{"phishing"},
	})
	require.NoError(t, err)
	second, _, err := store.UpsertURL(ctx, fraud.ID, domain.URLRecord{
		URL: "https://mail.example/login", Title: "Credential page",
		Status: domain.StatusInProgress,
	})
	require.NoError(t, err)
	_, _, err = store.UpsertURL(ctx, fraud.ID, domain.URLRecord{
		URL: "https://cdn.example/kit.zip", Title: "Kit download",
		Status: domain.StatusDone,
	})
	require.NoError(t, err)

	// Mark the second record done.
	second.Status = domain.StatusDone
	_, err = store.UpdateURL(ctx, fraud.ID, second.ID, second)
	require.NoError(t, err)

	// The list view sees two done records, one todo.
	coll, err := store.Load(ctx)
	require.NoError(t, err)
	fraudCase := coll.FindCase(fraud.ID)
	require.NotNil(t, fraudCase)

	done := listview.Apply(fraudCase, listview.Query{Filter: listview.FilterDone})
	require.Len(t, done, 2)
	stats := listview.CountStats(fraudCase)
	require.Equal(t, listview.Stats{Total: 3, Todo: 1, InProgress: 0, Done: 2}, stats)

	// Search hits tags as well as titles.
	hits := listview.Apply(fraudCase, listview.Query{Search: "phishing"})
	require.Len(t, hits, 1)
	require.Equal(t, "Fake checkout", hits[0].Title)

	// Export, wipe everything, import the backup.
	exported, err := codec.ExportJSON(coll)
	require.NoError(t, err)

	require.NoError(t, store.DeleteCase(ctx, fraud.ID))
	require.NoError(t, store.DeleteCase(ctx, archive.ID))
	empty, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.Cases)

	restored, err := codec.ImportJSON(exported)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, restored))

	after, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, after.Cases, 2)
	require.Equal(t, fraud.ID, after.DefaultCaseID)
	require.Len(t, after.FindCase(fraud.ID).URLs, 3)
}
