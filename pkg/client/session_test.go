package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionSubscribeAndUnsubscribe(t *testing.T) {
	s := NewSession()
	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })

	s.Set("tok", &User{ID: "1", Username: "admin"})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "admin", s.Get().User.Username)

	unsubscribe()
	unsubscribe()
	s.Clear()
	assert.Equal(t, 1, calls)
	assert.False(t, s.Get().SignedIn())
	assert.Nil(t, s.Get().User)
}

func TestSessionNotifiesEverySubscriber(t *testing.T) {
	s := NewSession()
	var a, b []bool
	s.Subscribe(func(st State) { a = append(a, st.SignedIn()) })
	s.Subscribe(func(st State) { b = append(b, st.SignedIn()) })

	s.Set("tok", nil)
	s.Clear()

	assert.Equal(t, []bool{true, false}, a)
	assert.Equal(t, []bool{true, false}, b)
}

func TestSubscriberMaySubscribe(t *testing.T) {
	s := NewSession()
	inner := 0
	s.Subscribe(func(State) {
		s.Subscribe(func(State) { inner++ })
	})

	s.Set("tok", nil)
	assert.Equal(t, 0, inner)
	s.Clear()
	assert.GreaterOrEqual(t, inner, 1)
}
