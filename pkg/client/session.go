package client

import "sync"

// State is a snapshot of the signed-in session
type State struct {
	Token string
	User  *User
}

// SignedIn reports whether the state carries a token
func (s State) SignedIn() bool {
	return s.Token != ""
}

// Session holds the credential shared by everything that talks to the API.
// Subscribers are called synchronously after every change.
type Session struct {
	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{subs: make(map[int]func(State))}
}

// Get returns the current state
func (s *Session) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the token and user and notifies subscribers
func (s *Session) Set(token string, user *User) {
	s.update(State{Token: token, User: user})
}

// Clear signs the session out and notifies subscribers
func (s *Session) Clear() {
	s.update(State{})
}

// Subscribe registers fn for state changes. The returned func removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) update(next State) {
	s.mu.Lock()
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
