package roster

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrityindex/internal/politician/models"
	"integrityindex/internal/politician/store"
	rostermetrics "integrityindex/internal/roster/metrics"
)

// faultyStore injects a storage fault on Create to simulate a persistence
// failure mid-batch.
type faultyStore struct {
	store.Store
	failAfter int
	creates   int
}

func (s *faultyStore) Create(ctx context.Context, p *models.Politician) error {
	s.creates++
	if s.creates > s.failAfter {
		return errors.New("connection reset")
	}
	return s.Store.Create(ctx, p)
}

// faultyTx wraps the in-memory transaction so the injected fault still goes
// through real rollback semantics.
type faultyTx struct {
	inner     *store.InMemoryTx
	failAfter int
}

func (t *faultyTx) RunInTx(ctx context.Context, fn func(st store.Store) error) error {
	return t.inner.RunInTx(ctx, func(st store.Store) error {
		return fn(&faultyStore{Store: st, failAfter: t.failAfter})
	})
}

func newTestReconciler(st *store.InMemoryStore) *Reconciler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(store.NewInMemoryTx(st), logger, rostermetrics.NewWith(prometheus.NewRegistry()))
}

func TestRunCreatesNewEntities(t *testing.T) {
	st := store.NewInMemory()
	rec := validRecord()

	summary, err := newTestReconciler(st).Run(context.Background(), []Record{rec})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, ActionCreated, summary.Outcomes[0].Action)
	assert.Equal(t, "Jane Doe", summary.Outcomes[0].Name)

	created, err := st.FindByExternalID(context.Background(), store.KindGovtrack, "412345")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", created.Name)
}

func TestRunIsIdempotentOnGovtrackID(t *testing.T) {
	st := store.NewInMemory()
	reconciler := newTestReconciler(st)
	ctx := context.Background()

	_, err := reconciler.Run(ctx, []Record{validRecord()})
	require.NoError(t, err)

	first, err := st.FindByExternalID(ctx, store.KindGovtrack, "412345")
	require.NoError(t, err)

	// Second run with an updated party must update in place, not duplicate.
	updated := validRecord()
	updated.Terms[0].Party = "Independent"
	summary, err := reconciler.Run(ctx, []Record{updated})
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, ActionUpdated, summary.Outcomes[0].Action)

	all, err := st.List(ctx, store.Filter{}, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "Independent", all[0].Party)
	assert.Equal(t, "412345", all[0].GovtrackID)
}

func TestRunWithoutGovtrackIDAlwaysCreates(t *testing.T) {
	st := store.NewInMemory()
	reconciler := newTestReconciler(st)
	ctx := context.Background()

	rec := validRecord()
	rec.IDs = IdentifierBlock{}

	_, err := reconciler.Run(ctx, []Record{rec})
	require.NoError(t, err)
	_, err = reconciler.Run(ctx, []Record{rec})
	require.NoError(t, err)

	all, err := st.List(ctx, store.Filter{}, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 2, "records without a govtrack id never match existing entities")
}

func TestRunSkipsInvalidRecords(t *testing.T) {
	st := store.NewInMemory()

	noTerms := validRecord()
	noTerms.Terms = nil
	noParty := validRecord()
	noParty.Name = NameBlock{First: "John", Last: "Roe"}
	noParty.Terms[0].Party = ""
	noParty.IDs = IdentifierBlock{Govtrack: 999999}

	summary, err := newTestReconciler(st).Run(context.Background(), []Record{noTerms, validRecord(), noParty})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, ActionSkipped, summary.Outcomes[0].Action)
	assert.Equal(t, "no terms data", summary.Outcomes[0].Reason)
	assert.Equal(t, ActionCreated, summary.Outcomes[1].Action)
	assert.Equal(t, ActionSkipped, summary.Outcomes[2].Action)
	assert.Equal(t, "missing required fields", summary.Outcomes[2].Reason)
}

func TestRunAbortsAndRollsBackOnStorageFault(t *testing.T) {
	st := store.NewInMemory()
	ctx := context.Background()

	second := validRecord()
	second.Name = NameBlock{First: "John", Last: "Roe"}
	second.IDs = IdentifierBlock{Govtrack: 500000}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	tx := &faultyTx{inner: store.NewInMemoryTx(st), failAfter: 1}
	reconciler := New(tx, logger, rostermetrics.NewWith(prometheus.NewRegistry()))

	summary, err := reconciler.Run(ctx, []Record{validRecord(), second})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.Nil(t, summary)

	// All-or-nothing: the first record's write must not survive the abort.
	all, err := st.List(ctx, store.Filter{}, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunDuplicateExternalIDSurfacesConflict(t *testing.T) {
	st := store.NewInMemory()
	ctx := context.Background()

	first := validRecord()
	first.IDs.Opensecrets = "N00001234"
	second := validRecord()
	second.Name = NameBlock{First: "John", Last: "Roe"}
	second.IDs = IdentifierBlock{Govtrack: 500000, Opensecrets: "N00001234"}

	_, err := newTestReconciler(st).Run(ctx, []Record{first, second})
	require.Error(t, err, "duplicate opensecrets id is a storage fault, fatal to the run")

	// The fatal run commits nothing, not even the valid first record.
	all, err := st.List(ctx, store.Filter{}, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, all)
}
