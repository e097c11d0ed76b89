// Package registry holds the process-lifetime membership view of game
// rooms. It is the fast path for "does this room exist and who is in it";
// the durable record in postgres is the source of truth across restarts.
package registry

import "sync"

// Room is a snapshot of one registry entry.
type Room struct {
	Owner   string
	Players []string
}

type entry struct {
	mu      sync.Mutex
	owner   string
	players []string
}

// Registry maps roomId -> members. The outer lock only guards the map
// itself; every entry carries its own mutex so mutations on different
// rooms never contend.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*entry
}

func New() *Registry {
	return &Registry{rooms: make(map[string]*entry)}
}

// Create registers a room with the owner as its only player. An existing
// entry is replaced unconditionally, so re-creating a live room drops its
// current member list. Callers rely on that for a fresh start.
func (r *Registry) Create(roomID, ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[roomID] = &entry{owner: ownerID, players: []string{ownerID}}
}

// Seed registers a room hydrated from the durable store, owner-first, if
// it is not already present. Unlike Create it never clobbers a live entry.
func (r *Registry) Seed(roomID, ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = &entry{owner: ownerID, players: []string{ownerID}}
	}
}

// Join merges playerId into the room's member list. The owner always keeps
// slot zero; a second slot is filled only for a non-owner player. Reports
// false when the room is not registered.
func (r *Registry) Join(roomID, playerID string) bool {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if playerID == e.owner {
		e.players = []string{e.owner}
		return true
	}
	e.players = []string{e.owner, playerID}
	return true
}

// Get returns a copy of the room's membership.
func (r *Registry) Get(roomID string) (Room, bool) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return Room{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	players := make([]string, len(e.players))
	copy(players, e.players)
	return Room{Owner: e.owner, Players: players}, true
}

// Exists is the cheap membership guard used by every event handler.
func (r *Registry) Exists(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}
