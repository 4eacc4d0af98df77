// Package session holds the signed-in identity of the CLI: the bearer token
// and the user it belongs to. A copy is persisted in the local metadata store
// so restarting the client keeps the user signed in.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// Keys under which the session is persisted.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// State is a snapshot delivered to observers.
type State struct {
	Authenticated bool
	Token         string
	User          *models.User
}

type Session struct {
	mu        sync.Mutex
	db        *sql.DB
	token     string
	user      *models.User
	observers map[int]func(State)
	nextID    int
}

// New returns an empty session persisted in db. A nil db keeps the session
// in memory only.
func New(db *sql.DB) *Session {
	return &Session{db: db, observers: make(map[int]func(State))}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

// Login stores token and user, persisting both in one transaction.
func (s *Session) Login(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := metadata.NewSQLiteRepository(tx)
			if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
				return err
			}
			return repo.Set(ctx, KeyUser, raw)
		})
		if err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetUser replaces the cached user after a profile change.
func (s *Session) SetUser(ctx context.Context, user models.User) error {
	if !s.IsAuthenticated() {
		return nil
	}

	if s.db != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		if err := metadata.NewSQLiteRepository(s.db).Set(ctx, KeyUser, raw); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout forgets the session in memory and in storage. It is a no-op when
// nobody is signed in.
func (s *Session) Logout(ctx context.Context) error {
	wasAuthenticated := s.IsAuthenticated()

	if s.db != nil {
		err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := metadata.NewSQLiteRepository(tx)
			if err := repo.Delete(ctx, KeyToken); err != nil {
				return err
			}
			return repo.Delete(ctx, KeyUser)
		})
		if err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if wasAuthenticated {
		s.notify()
	}
	return nil
}

// Restore loads a persisted session. A half-written or unreadable copy is
// discarded and the session stays signed out.
func (s *Session) Restore(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return err
	}
	rawUser, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return err
	}
	if len(token) == 0 || len(rawUser) == 0 {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = string(token)
	s.user = &user
	s.mu.Unlock()

	s.notify()
	return nil
}

// Subscribe registers fn to be called after every change. The returned func
// removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// notify calls observers outside the lock so they may read the session.
func (s *Session) notify() {
	s.mu.Lock()
	st := State{Authenticated: s.token != "", Token: s.token, User: copyUser(s.user)}
	fns := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
