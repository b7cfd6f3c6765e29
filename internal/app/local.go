package app

import (
	"sync"

	"github.com/five82/realmboard/internal/prefs"
	"github.com/five82/realmboard/internal/sotah"
)

// localPrefs guards the prefs file shared by the syncer, the actions and the
// theme switcher.
type localPrefs struct {
	mu   sync.Mutex
	path string
	p    prefs.Prefs
}

func loadLocalPrefs(path string) *localPrefs {
	p, _ := prefs.Load(path)
	return &localPrefs{path: path, p: p}
}

func (l *localPrefs) get() prefs.Prefs {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p
}

func (l *localPrefs) preference() *sotah.UserPreference {
	return l.get().Preference()
}

// update applies fn and writes the result to disk.
func (l *localPrefs) update(fn func(*prefs.Prefs)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.p
	fn(&next)
	if err := prefs.Save(l.path, next); err != nil {
		return err
	}
	l.p = next
	return nil
}
