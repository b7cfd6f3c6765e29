package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/sotah"
)

func TestStore_ZeroValueStartsFromDefault(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, Default(), *snap)
	assert.Same(t, snap, s.Snapshot())
}

func TestStore_DispatchAppliesInOrder(t *testing.T) {
	s := NewStore(nil, nil)

	s.Dispatch(RequestBoot{})
	s.Dispatch(ReceiveBoot{Boot: &sotah.Boot{Regions: []sotah.Region{eu, us}}})
	s.Dispatch(RegionChange{Region: us})
	got := s.Dispatch(RequestRealms{})

	assert.Same(t, got, s.Snapshot())
	assert.Equal(t, fetch.Success, got.Boot.Level)
	assert.Equal(t, fetch.Fetching, got.RealmList.Level)
	assert.Equal(t, us, *got.CurrentRegion)
}

func TestStore_DispatchKeepsSnapshotsIndependent(t *testing.T) {
	s := NewStore(nil, nil)
	before := s.Snapshot()

	s.Dispatch(RequestPing{})

	assert.Equal(t, fetch.Initial, before.Ping.Level)
	assert.Equal(t, fetch.Fetching, s.Snapshot().Ping.Level)
}

func TestStore_SubscribeReceivesCurrentAndLatest(t *testing.T) {
	s := NewStore(nil, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Same(t, s.Snapshot(), <-ch)

	s.Dispatch(RequestPing{})
	s.Dispatch(ReceivePing{OK: true})

	// Intermediate states are coalesced for slow readers.
	latest := <-ch
	assert.Same(t, s.Snapshot(), latest)
	assert.Equal(t, fetch.Success, latest.Ping.Level)

	select {
	case st := <-ch:
		t.Fatalf("unexpected extra state %+v", st)
	default:
	}
}

func TestStore_UnchangedStateNotPublished(t *testing.T) {
	s := NewStore(nil, nil)
	ch, cancel := s.Subscribe()
	defer cancel()
	<-ch

	s.Dispatch(ReceivePing{OK: true})

	select {
	case st := <-ch:
		t.Fatalf("rejected receive was published: %+v", st)
	default:
	}
}

func TestStore_UnsubscribeClosesOnce(t *testing.T) {
	s := NewStore(nil, nil)
	ch, cancel := s.Subscribe()
	<-ch

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { s.Dispatch(RequestPing{}) })
}

func TestStore_LogsDispatchedEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewStore(nil, zap.New(core))

	s.Dispatch(RequestPing{})
	s.Dispatch(nil)

	entries := logs.FilterMessage("dispatch").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "request-ping", entries[0].ContextMap()["event"])
	assert.Equal(t, true, entries[0].ContextMap()["changed"])
	assert.Equal(t, "nil", entries[1].ContextMap()["event"])
	assert.Equal(t, false, entries[1].ContextMap()["changed"])
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore(nil, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(RequestPing{})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), s.Snapshot().Ping.Seq)
	assert.NotNil(t, <-ch)
}
