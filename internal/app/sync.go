package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/fetch"
	"github.com/five82/realmboard/internal/session"
	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
)

// Job is one unit of work the syncer can start for a snapshot.
type Job int

const (
	JobPing Job = iota
	JobReloadUser
	JobAnonymous
	JobPreferences
	JobBoot
	JobRealms
	JobPricelists
)

var jobNames = [...]string{"ping", "reload-user", "anonymous", "preferences", "boot", "realms", "pricelists"}

func (j Job) String() string {
	if j >= 0 && int(j) < len(jobNames) {
		return jobNames[j]
	}
	return "job"
}

// Plan returns the jobs warranted by s, in dependency order. It only looks
// at s, so the same snapshot always yields the same plan.
func Plan(s *state.AppState) []Job {
	if s == nil {
		return nil
	}
	var jobs []Job

	if s.Ping.Level == fetch.Initial {
		jobs = append(jobs, JobPing)
	}
	if s.Ping.Level == fetch.Success && s.AuthLevel == state.AuthInitial {
		if s.PreloadedToken != "" {
			jobs = append(jobs, JobReloadUser)
		} else {
			jobs = append(jobs, JobAnonymous)
		}
	}
	if s.AuthLevel != state.AuthInitial && s.UserPreferences.Level == fetch.Initial {
		jobs = append(jobs, JobPreferences)
	}
	if s.Boot.Level == fetch.Initial && s.AuthLevel != state.AuthInitial && s.UserPreferences.Level.Settled() {
		jobs = append(jobs, JobBoot)
	}
	if s.RealmList.Level == fetch.Prompted && s.CurrentRegion != nil {
		jobs = append(jobs, JobRealms)
	}
	if s.AuthLevel == state.AuthAuthenticated && s.UserPreferences.Level.Settled() && s.CurrentRealm != nil &&
		(s.PricelistList.Level == fetch.Initial || s.PricelistList.Level == fetch.Prompted) {
		jobs = append(jobs, JobPricelists)
	}
	return jobs
}

// Syncer turns store snapshots into API calls and their results back into
// events.
type Syncer struct {
	store    *state.Store
	api      sotah.API
	sessions tokenStore
	local    *localPrefs
	logger   *zap.Logger

	retryBase    time.Duration
	refreshEvery time.Duration

	mu       sync.Mutex
	inflight map[Job]bool
	wg       sync.WaitGroup
}

type tokenStore interface {
	SaveToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

func newSyncer(store *state.Store, api sotah.API, sessions tokenStore, local *localPrefs, logger *zap.Logger, refreshEvery time.Duration) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if refreshEvery <= 0 {
		refreshEvery = defaultRefreshInterval
	}
	return &Syncer{
		store:        store,
		api:          api,
		sessions:     sessions,
		local:        local,
		logger:       logger,
		retryBase:    defaultRetryBackoff,
		refreshEvery: refreshEvery,
		inflight:     make(map[Job]bool),
	}
}

// Run drives the syncer until ctx is cancelled and every started job has
// returned.
func (s *Syncer) Run(ctx context.Context) {
	snapshots, unsubscribe := s.store.Subscribe()
	defer unsubscribe()

	refresh := time.NewTicker(s.refreshEvery)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return
		case snap, ok := <-snapshots:
			if !ok {
				s.wg.Wait()
				return
			}
			for _, job := range Plan(snap) {
				s.start(ctx, job)
			}
		case <-refresh.C:
			if shouldRefreshRealms(s.store.Snapshot()) {
				s.start(ctx, JobRealms)
			}
		}
	}
}

// start runs job on its own goroutine unless the same job is in flight.
// The current snapshot is planned again once the job returns, since a
// receive rejected as stale publishes nothing.
func (s *Syncer) start(ctx context.Context, job Job) {
	s.mu.Lock()
	if s.inflight[job] {
		s.mu.Unlock()
		return
	}
	s.inflight[job] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, job)

		s.mu.Lock()
		delete(s.inflight, job)
		s.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		for _, next := range Plan(s.store.Snapshot()) {
			s.start(ctx, next)
		}
	}()
}

func (s *Syncer) run(ctx context.Context, job Job) {
	switch job {
	case JobPing:
		s.ping(ctx)
	case JobReloadUser:
		s.reloadUser(ctx)
	case JobAnonymous:
		s.store.Dispatch(state.ChangeAuthLevel{Level: state.AuthUnauthenticated})
	case JobPreferences:
		s.preferences(ctx)
	case JobBoot:
		s.boot(ctx)
	case JobRealms:
		s.realms(ctx)
	case JobPricelists:
		s.pricelists(ctx)
	}
}

// ping retries with capped backoff until the API answers or ctx ends.
func (s *Syncer) ping(ctx context.Context) {
	for failures := 0; ; failures++ {
		seq := s.store.Dispatch(state.RequestPing{}).Ping.Seq
		err := s.api.Ping(ctx)
		s.store.Dispatch(state.ReceivePing{OK: err == nil, Seq: seq})
		if err == nil {
			return
		}

		wait := calculateBackoff(failures, s.retryBase)
		s.logger.Warn("ping failed", zap.Error(err), zap.Int("failures", failures+1), zap.Duration("retry_in", wait))
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (s *Syncer) reloadUser(ctx context.Context) {
	token := s.store.Snapshot().PreloadedToken
	user, err := s.api.ReloadUser(ctx, token)
	if err != nil {
		s.logger.Warn("reload user failed", zap.Error(err))
		if errors.Is(err, sotah.ErrUnauthorized) && s.sessions != nil {
			if clearErr := s.sessions.Clear(ctx); clearErr != nil {
				s.logger.Warn("clear stale session", zap.Error(clearErr))
			}
		}
	}
	s.store.Dispatch(state.ReceiveUserReload{User: user, Err: err})
}

// preferences loads the server preference for a logged in user and the
// locally remembered selection otherwise.
func (s *Syncer) preferences(ctx context.Context) {
	snap := s.store.Dispatch(state.RequestUserPreferences{})
	seq := snap.UserPreferences.Seq

	if snap.AuthLevel != state.AuthAuthenticated {
		var pref *sotah.UserPreference
		if s.local != nil {
			pref = s.local.preference()
		}
		s.store.Dispatch(state.ReceiveUserPreferences{Preference: pref, Seq: seq})
		return
	}

	pref, err := s.api.Preferences(ctx, snap.Token())
	if err != nil {
		s.logger.Warn("load preferences failed", zap.Error(err))
	}
	s.store.Dispatch(state.ReceiveUserPreferences{Preference: pref, Err: err, Seq: seq})
}

// boot retries like ping until a boot payload is accepted. A receive that
// was superseded by a newer request also ends the loop.
func (s *Syncer) boot(ctx context.Context) {
	for failures := 0; ; failures++ {
		seq := s.store.Dispatch(state.RequestBoot{}).Boot.Seq
		boot, err := s.api.Boot(ctx)
		if err != nil {
			boot = nil
		} else if boot == nil || len(boot.Regions) == 0 {
			err = errEmptyBoot
		}
		snap := s.store.Dispatch(state.ReceiveBoot{Boot: boot, Seq: seq})
		if snap.Boot.Level != fetch.Failure {
			return
		}

		wait := calculateBackoff(failures, s.retryBase)
		s.logger.Warn("boot failed", zap.Error(err), zap.Int("failures", failures+1), zap.Duration("retry_in", wait))
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (s *Syncer) realms(ctx context.Context) {
	snap := s.store.Dispatch(state.RequestRealms{})
	if snap.CurrentRegion == nil {
		s.store.Dispatch(state.ReceiveRealms{Seq: snap.RealmList.Seq})
		return
	}
	region := snap.CurrentRegion.Name
	realms, err := s.api.Realms(ctx, region)
	if err != nil {
		s.logger.Warn("realms failed", zap.String("region", string(region)), zap.Error(err))
		realms = nil
	}
	s.store.Dispatch(state.ReceiveRealms{Realms: realms, Seq: snap.RealmList.Seq})
}

func (s *Syncer) pricelists(ctx context.Context) {
	snap := s.store.Dispatch(state.RequestPricelists{})
	seq := snap.PricelistList.Seq
	if snap.CurrentRegion == nil || snap.CurrentRealm == nil {
		s.store.Dispatch(state.ReceivePricelists{Err: errNoSelection, Seq: seq})
		return
	}
	lists, err := s.api.Pricelists(ctx, snap.Token(), snap.CurrentRegion.Name, snap.CurrentRealm.Slug)
	if err != nil {
		s.logger.Warn("pricelists failed", zap.Error(err))
	}
	s.store.Dispatch(state.ReceivePricelists{Pricelists: lists, Err: err, Seq: seq})
}

var (
	errNoSelection = errors.New("no region or realm selected")
	errEmptyBoot   = errors.New("boot returned no regions")
)

var _ tokenStore = (*session.Store)(nil)
