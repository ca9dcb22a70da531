// Package session holds the client's proof of authentication: the token plus
// username and account type, persisted across runs and rehydrated at startup.
package session

import (
	"sync"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
)

// Session is the current credential set. Token and Username are both present
// or both absent; AccountType may be absent on sessions restored from an older
// persisted copy.
type Session struct {
	Token       string
	Username    string
	AccountType gateway.AccountType
}

// Store is the process-wide session holder. It is constructed once and passed
// to every consumer; all access is mutex-guarded so a login, logout or restore
// is a single atomic transition from a reader's perspective.
//
// Keyring failures never escape: the store degrades to memory-only for the
// rest of the process lifetime.
type Store struct {
	mu      sync.RWMutex
	current Session
	loading bool

	keyring Keyring
	log     *logger.Logger
}

func NewStore(keyring Keyring, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		keyring: keyring,
		loading: true,
		log:     log,
	}
}

// Restore reads the persisted session. Values are adopted only when token and
// username are both present; the account type is optional. Whatever happens,
// the loading flag drops to false and stays there.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if s.keyring == nil {
		return
	}

	token, username, accountType, err := s.keyring.Read()
	if err != nil {
		s.log.Warn("session restore failed, continuing unauthenticated", "error", err)
		return
	}
	if token == "" || username == "" {
		return
	}

	at, _ := gateway.ParseAccountType(accountType)
	s.current = Session{Token: token, Username: username, AccountType: at}
	s.log.Debug("session restored", "username", username)
}

// Login unconditionally overwrites the in-memory and persisted session. The
// token format is not validated here.
func (s *Store) Login(token, username string, accountType gateway.AccountType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{Token: token, Username: username, AccountType: accountType}

	if s.keyring == nil {
		return
	}
	if err := s.keyring.Write(token, username, string(accountType)); err != nil {
		s.log.Warn("session not persisted, in-memory only", "error", err)
	}
}

// Logout clears both the in-memory and persisted session. It always succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}

	if s.keyring == nil {
		return
	}
	if err := s.keyring.Clear(); err != nil {
		s.log.Warn("persisted session not cleared", "error", err)
	}
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// IsAuthenticated is true iff a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token != ""
}

// Loading is true only until the initial Restore completes. Consumers must not
// act on authentication state while it is true.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
