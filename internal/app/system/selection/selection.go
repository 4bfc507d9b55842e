// internal/app/system/selection/selection.go
package selection

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "tourismboard-session"

	sessionIDKey = "session_id"
	marketKey    = "market"
	districtKey  = "district"
)

// Raw is the selection as stored in the session, before validation against
// the reference tables. Empty fields mean "use the default".
type Raw struct {
	Market   string
	District string
}

// Manager keeps each visitor's market/district choice in a signed cookie
// session. Nothing is shared between visitors.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager. secure marks cookies Secure with
// SameSite=None; otherwise SameSite=Lax for plain-HTTP development.
func NewManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("selection session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// session returns the visitor's session. A cookie that no longer decodes
// (rotated key, tampering) is replaced by a fresh session. Under
// LoadSessionID the result is kept for the rest of the request, so a bad
// cookie is logged once and Get and Save share the same fresh session.
func (m *Manager) session(r *http.Request) *sessions.Session {
	cache, _ := r.Context().Value(sessionCacheCtxKey).(*sessionCache)
	if cache != nil && cache.sess != nil {
		return cache.sess
	}

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
		sess = sessions.NewSession(m.store, m.name)
		sess.Options = m.store.Options
		sess.IsNew = true
	}
	if cache != nil {
		cache.sess = sess
	}
	return sess
}

// Get returns the stored selection. A visitor without a session gets the
// zero Raw, which callers resolve to the defaults.
func (m *Manager) Get(r *http.Request) Raw {
	sess := m.session(r)
	return Raw{
		Market:   getString(sess, marketKey),
		District: getString(sess, districtKey),
	}
}

// Save stores the selection in the visitor's session.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sel Raw) error {
	sess := m.session(r)
	if getString(sess, sessionIDKey) == "" {
		sess.Values[sessionIDKey] = uuid.NewString()
	}
	sess.Values[marketKey] = sel.Market
	sess.Values[districtKey] = sel.District

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save selection session: %w", err)
	}

	m.log.Debug("selection saved",
		zap.String("session_id", getString(sess, sessionIDKey)),
		zap.String("market", sel.Market),
		zap.String("district", sel.District))
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session ID middleware                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	sessionIDCtxKey    ctxKey = "selectionSessionID"
	sessionCacheCtxKey ctxKey = "selectionSession"
)

// sessionCache holds the session resolved for one request.
type sessionCache struct {
	sess *sessions.Session
}

// LoadSessionID resolves the visitor's session once per request and puts
// its ID (if any) into the request context so handlers can tag their logs
// with it.
func (m *Manager) LoadSessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), sessionCacheCtxKey, &sessionCache{})
		r = r.WithContext(ctx)
		if id := getString(m.session(r), sessionIDKey); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), sessionIDCtxKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// SessionID returns the ID set by LoadSessionID, or "" for new visitors.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDCtxKey).(string)
	return id
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
