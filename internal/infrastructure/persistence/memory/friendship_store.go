package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/filmorate/filmorate/internal/domain/user"
)

// FriendshipStore implements user.FriendshipRepository on an in-memory
// adjacency map. Both directions of a pair live and die under one lock,
// so the relation is always symmetric.
type FriendshipStore struct {
	mu      sync.RWMutex
	friends map[user.UserID]map[user.UserID]struct{}
}

// NewFriendshipStore creates an empty FriendshipStore.
func NewFriendshipStore() *FriendshipStore {
	return &FriendshipStore{friends: make(map[user.UserID]map[user.UserID]struct{})}
}

// Add links both users. Adding an existing friendship is a no-op.
func (s *FriendshipStore) Add(_ context.Context, id, otherID user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.link(id, otherID)
	s.link(otherID, id)
	return nil
}

// Remove unlinks both users. Removing an absent friendship is a no-op.
func (s *FriendshipStore) Remove(_ context.Context, id, otherID user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unlink(id, otherID)
	s.unlink(otherID, id)
	return nil
}

// FriendIDs returns the ids related to id, ordered ascending.
func (s *FriendshipStore) FriendIDs(_ context.Context, id user.UserID) ([]user.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.friends[id]
	out := make([]user.UserID, 0, len(set))
	for fid := range set {
		out = append(out, fid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// AreFriends checks whether the two users are linked.
func (s *FriendshipStore) AreFriends(_ context.Context, id, otherID user.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.friends[id][otherID]
	return ok, nil
}

// RemoveAllOf unlinks the user from everyone.
func (s *FriendshipStore) RemoveAllOf(_ context.Context, id user.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for fid := range s.friends[id] {
		s.unlink(fid, id)
	}
	delete(s.friends, id)
	return nil
}

// link adds a directed edge. Callers must hold the lock.
func (s *FriendshipStore) link(from, to user.UserID) {
	set, ok := s.friends[from]
	if !ok {
		set = make(map[user.UserID]struct{})
		s.friends[from] = set
	}
	set[to] = struct{}{}
}

// unlink removes a directed edge. Callers must hold the lock.
func (s *FriendshipStore) unlink(from, to user.UserID) {
	set, ok := s.friends[from]
	if !ok {
		return
	}
	delete(set, to)
	if len(set) == 0 {
		delete(s.friends, from)
	}
}
