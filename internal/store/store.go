// Package store provides the read-only data source behind every ScholarSync screen.
//
// Screens depend only on the Provider interface; MemoryStore is the in-memory
// implementation seeded with the fixed mock collections. A persistence-backed
// provider can replace it without touching any screen.
//
// Usage Example:
//
//	s := store.NewMemoryStore()
//	for _, u := range s.ListUsers() {
//		fmt.Println(u.Name)
//	}
//	me, _ := s.User(store.DefaultCurrentUserID)
//	peers := s.Connections(me.ID)
package store

import (
	"errors"
	"fmt"

	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// ErrDuplicateID is returned when a collection contains the same ID twice.
var ErrDuplicateID = errors.New("duplicate id")

// Provider is the narrow read-only query surface used by the screens.
type Provider interface {
	ListUsers() []types.User
	ListPosts() []types.ResearchPost
	ListOpportunities() []types.Opportunity
}

// MemoryStore serves fixed collections from memory.
// It is never mutated after construction, so it is safe for concurrent readers.
type MemoryStore struct {
	users   []types.User
	posts   []types.ResearchPost
	opps    []types.Opportunity
	userIdx map[string]int
}

var _ Provider = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with the built-in mock collections.
func NewMemoryStore() *MemoryStore {
	s, err := NewMemoryStoreFrom(SeedUsers(), SeedPosts(), SeedOpportunities())
	if err != nil {
		// The seed is static; a duplicate here is a programming error.
		panic(fmt.Sprintf("store: invalid seed data: %v", err))
	}
	return s
}

// NewMemoryStoreFrom builds a store over the given collections.
// User, post and opportunity IDs must each be unique within their collection.
func NewMemoryStoreFrom(users []types.User, posts []types.ResearchPost, opps []types.Opportunity) (*MemoryStore, error) {
	s := &MemoryStore{
		users:   cloneUsers(users),
		posts:   clonePosts(posts),
		opps:    append([]types.Opportunity(nil), opps...),
		userIdx: make(map[string]int, len(users)),
	}

	for i, u := range s.users {
		if _, dup := s.userIdx[u.ID]; dup {
			return nil, fmt.Errorf("user %q: %w", u.ID, ErrDuplicateID)
		}
		s.userIdx[u.ID] = i
	}

	seen := make(map[string]bool, len(s.posts))
	for _, p := range s.posts {
		if seen[p.ID] {
			return nil, fmt.Errorf("post %q: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = true
		if _, ok := s.userIdx[p.AuthorID]; !ok {
			logging.StoreDebug("post %s references unknown author %s", p.ID, p.AuthorID)
		}
	}

	seen = make(map[string]bool, len(s.opps))
	for _, o := range s.opps {
		if seen[o.ID] {
			return nil, fmt.Errorf("opportunity %q: %w", o.ID, ErrDuplicateID)
		}
		seen[o.ID] = true
	}

	logging.StoreDebug("memory store ready: %d users, %d posts, %d opportunities",
		len(s.users), len(s.posts), len(s.opps))
	return s, nil
}

// ListUsers returns a copy of all users in collection order.
func (s *MemoryStore) ListUsers() []types.User {
	return cloneUsers(s.users)
}

// ListPosts returns a copy of all posts in collection order.
func (s *MemoryStore) ListPosts() []types.ResearchPost {
	return clonePosts(s.posts)
}

// ListOpportunities returns a copy of all opportunities in collection order.
func (s *MemoryStore) ListOpportunities() []types.Opportunity {
	return append([]types.Opportunity(nil), s.opps...)
}

// User looks up a user by ID.
func (s *MemoryStore) User(id string) (types.User, bool) {
	i, ok := s.userIdx[id]
	if !ok {
		return types.User{}, false
	}
	return cloneUser(s.users[i]), true
}

// Connections returns every user except centerID, in collection order.
func (s *MemoryStore) Connections(centerID string) []types.User {
	out := make([]types.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID == centerID {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out
}

func cloneUser(u types.User) types.User {
	u.Interests = append([]string(nil), u.Interests...)
	if u.SocialLinks != nil {
		links := *u.SocialLinks
		u.SocialLinks = &links
	}
	return u
}

func cloneUsers(in []types.User) []types.User {
	out := make([]types.User, len(in))
	for i, u := range in {
		out[i] = cloneUser(u)
	}
	return out
}

func clonePosts(in []types.ResearchPost) []types.ResearchPost {
	out := make([]types.ResearchPost, len(in))
	for i, p := range in {
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}
