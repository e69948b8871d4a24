package search

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

// flakySource serves a fixed catalog until told to fail.
type flakySource struct {
	events  []events.Event
	fail    atomic.Bool
	fetches atomic.Int32
}

func (s *flakySource) FetchEvents(ctx context.Context) ([]events.Event, error) {
	s.fetches.Add(1)
	if s.fail.Load() {
		return nil, errors.New("upstream down")
	}
	return s.events, nil
}

type RefresherTestSuite struct {
	suite.Suite
	ctx       context.Context
	source    *flakySource
	refresher *Refresher
}

func TestRefresherTestSuite(t *testing.T) {
	suite.Run(t, new(RefresherTestSuite))
}

func (s *RefresherTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.source = &flakySource{events: events.SampleEvents()}
	s.refresher = NewRefresher(RefresherConfig{
		Source: s.source,
		Store:  vectorstore.NewInMemoryStore(testLogger()),
		Logger: testLogger(),
	})
}

func (s *RefresherTestSuite) TestRefreshBuildsSnapshot() {
	require.Nil(s.T(), s.refresher.snapshot())
	require.NoError(s.T(), s.refresher.Refresh(s.ctx))

	snap := s.refresher.snapshot()
	require.NotNil(s.T(), snap)

	count, err := snap.collection.Count(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10, count)
}

func (s *RefresherTestSuite) TestRefreshIsIdempotent() {
	require.NoError(s.T(), s.refresher.Refresh(s.ctx))
	require.NoError(s.T(), s.refresher.Refresh(s.ctx))

	count, err := s.refresher.snapshot().collection.Count(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10, count, "a rebuild replaces the index instead of appending to it")
}

func (s *RefresherTestSuite) TestFailedRefreshKeepsOldSnapshot() {
	require.NoError(s.T(), s.refresher.Refresh(s.ctx))
	before := s.refresher.snapshot()

	s.source.fail.Store(true)
	require.Error(s.T(), s.refresher.Refresh(s.ctx))

	require.Same(s.T(), before, s.refresher.snapshot())

	catalog, err := s.refresher.Events(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), catalog, 10)
}

func (s *RefresherTestSuite) TestEmptyCatalogIsRejected() {
	refresher := NewRefresher(RefresherConfig{
		Source: &events.StaticSource{},
		Store:  vectorstore.NewInMemoryStore(testLogger()),
		Logger: testLogger(),
	})
	require.ErrorIs(s.T(), refresher.Refresh(s.ctx), ErrNoEvents)
	require.ErrorIs(s.T(), refresher.Ensure(s.ctx), ErrNoEvents)
}

func (s *RefresherTestSuite) TestEnsureBuildsAtMostOnce() {
	errs := make(chan error, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.refresher.Ensure(s.ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(s.T(), err)
	}

	require.Equal(s.T(), int32(1), s.source.fetches.Load())
	require.NotNil(s.T(), s.refresher.snapshot())
}

func (s *RefresherTestSuite) TestEventsBeforeFirstBuildHitsSource() {
	catalog, err := s.refresher.Events(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), catalog, 10)
	require.Equal(s.T(), int32(1), s.source.fetches.Load())
}

func (s *RefresherTestSuite) TestEnsureReusesPersistedIndex() {
	path := filepath.Join(s.T().TempDir(), "index.db")

	store, err := vectorstore.NewSQLiteStore(path, testLogger())
	require.NoError(s.T(), err)

	first := &flakySource{events: events.SampleEvents()}
	builder := NewRefresher(RefresherConfig{Source: first, Store: store, Logger: testLogger()})
	require.NoError(s.T(), builder.Ensure(s.ctx))
	require.Equal(s.T(), int32(1), first.fetches.Load())
	require.NoError(s.T(), store.Close())

	reopened, err := vectorstore.NewSQLiteStore(path, testLogger())
	require.NoError(s.T(), err)
	defer reopened.Close()

	second := &flakySource{events: events.SampleEvents()}
	adopted := NewRefresher(RefresherConfig{Source: second, Store: reopened, Logger: testLogger()})
	require.NoError(s.T(), adopted.Ensure(s.ctx))
	require.Zero(s.T(), second.fetches.Load(), "a persisted index is adopted without refetching the catalog")

	// The refitted model answers queries against the stored vectors.
	engine := NewEngine(adopted, testLogger(), nil)
	results, err := engine.Search(s.ctx, "jazz festival", "")
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), results)
	require.Equal(s.T(), "2", results[0]["_id"])
}

func TestDocumentTextIsStable(t *testing.T) {
	event := events.SampleEvents()[1]
	require.Equal(t, documentText(event), documentText(event))
	require.Contains(t, documentText(event), "Title: Jazz Festival.")
	require.Contains(t, documentText(event), "Free: No.")
}

func TestMetadataProjection(t *testing.T) {
	event := events.SampleEvents()[2]
	metadata := metadataFor(event)

	require.Equal(t, "global", metadata["user_id"])
	require.Equal(t, "3", metadata["_id"])
	require.Equal(t, "Startup Pitch Competition", metadata["title"])
	require.Equal(t, true, metadata["isFree"])
	require.Equal(t, "Business", metadata["category"])
	require.Equal(t, "Bob Johnson", metadata["organizer"])
	require.Equal(t, "business, startup, pitching, investors, networking", metadata["tags"])
}

func TestEntryIDCarriesScope(t *testing.T) {
	entry := entryFor(events.SampleEvents()[0], []float32{1})
	require.Equal(t, "global_1", entry.ID)

	owned := events.SampleEvents()[0]
	owned.OwnerID = "alice"
	entry = entryFor(owned, []float32{1})
	require.Equal(t, "alice_1", entry.ID)
	require.Equal(t, "alice", metadataFor(owned)["user_id"])
}
