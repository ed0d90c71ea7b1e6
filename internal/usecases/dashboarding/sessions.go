package dashboarding

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const defaultSessionTTL = 30 * time.Minute

// SessionView é a resposta de toda operação sobre uma sessão
type SessionView struct {
	ID          string               `json:"id"`
	Source      string               `json:"source"`
	GeneratedAt time.Time            `json:"generated_at"`
	ExpiresAt   time.Time            `json:"expires_at"`
	View        domain.DashboardView `json:"view"`
}

// session guarda as duas entradas mutáveis da visão. O snapshot fica
// fixo durante toda a vida da sessão, mesmo após uma recarga do dataset.
type session struct {
	id         string
	snapshot   *domain.Dataset
	window     domain.DateWindow
	selection  domain.Selection
	lastAccess time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *SessionStore) create(snapshot *domain.Dataset, window domain.DateWindow, selection domain.Selection) (*SessionView, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "dashboarding: generate session id")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	sess := &session{
		id:         id,
		snapshot:   snapshot,
		window:     window,
		selection:  selection,
		lastAccess: st.now(),
	}
	st.sessions[id] = sess

	return st.render(sess), nil
}

// update aplica mutate sob o lock; mutate altera apenas uma das entradas
func (st *SessionStore) update(id string, mutate func(sess *session) error) (*SessionView, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, err := st.lookup(id)
	if err != nil {
		return nil, err
	}

	if mutate != nil {
		if err := mutate(sess); err != nil {
			return nil, err
		}
	}

	sess.lastAccess = st.now()

	return st.render(sess), nil
}

func (st *SessionStore) delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, err := st.lookup(id); err != nil {
		return err
	}

	delete(st.sessions, id)
	return nil
}

// purge remove as sessões sem acesso há mais que o TTL
func (st *SessionStore) purge() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if st.expired(sess) {
			delete(st.sessions, id)
			removed++
		}
	}

	return removed
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.sessions)
}

func (st *SessionStore) lookup(id string) (*session, error) {
	sess, ok := st.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "id %q", id)
	}

	if st.expired(sess) {
		delete(st.sessions, id)
		return nil, errors.Wrapf(ErrSessionNotFound, "id %q", id)
	}

	return sess, nil
}

func (st *SessionStore) expired(sess *session) bool {
	return st.now().Sub(sess.lastAccess) > st.ttl
}

func (st *SessionStore) render(sess *session) *SessionView {
	return &SessionView{
		ID:          sess.id,
		Source:      sess.snapshot.Source,
		GeneratedAt: sess.snapshot.GeneratedAt,
		ExpiresAt:   sess.lastAccess.Add(st.ttl),
		View:        domain.Derive(sess.snapshot.Records, sess.window, sess.selection.Key),
	}
}

// CreateSession abre uma sessão sobre o snapshot atual
func (s *Service) CreateSession(query ViewQuery) (*SessionView, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	window, err := ResolveWindow(snapshot.Records, query, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	selection := domain.NewSelection()
	if query.Metric != "" {
		key, err := domain.ParseMetricKey(query.Metric)
		if err != nil {
			return nil, err
		}
		selection = selection.Select(key)
	}

	return s.sessions.create(snapshot, window, selection)
}

func (s *Service) GetSessionView(id string) (*SessionView, error) {
	return s.sessions.update(id, nil)
}

// SetSessionRange troca apenas o período; a métrica selecionada é mantida
func (s *Service) SetSessionRange(id string, query ViewQuery) (*SessionView, error) {
	return s.sessions.update(id, func(sess *session) error {
		window, err := ResolveWindow(sess.snapshot.Records, query, s.maxRangeDays)
		if err != nil {
			return err
		}

		sess.window = window
		return nil
	})
}

// SetSessionMetric troca apenas a métrica; o período é mantido
func (s *Service) SetSessionMetric(id string, metric string) (*SessionView, error) {
	key, err := domain.ParseMetricKey(metric)
	if err != nil {
		return nil, err
	}

	return s.sessions.update(id, func(sess *session) error {
		sess.selection = sess.selection.Select(key)
		return nil
	})
}

func (s *Service) DeleteSession(id string) error {
	return s.sessions.delete(id)
}

func (s *Service) PurgeExpiredSessions() int {
	return s.sessions.purge()
}
