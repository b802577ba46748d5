package game

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Room codes are drawn from an alphabet with the visually confusable
// characters (0/O, 1/I) removed. Input is case-insensitive; codes are stored
// uppercase.
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 4
)

// Registry owns the room and connection maps for the process. Its lock is held
// across membership changes (join, removal) so a join can never slip into a
// room that is being torn down; game commands only touch each session's own
// mutex. Lock order is always registry first, then session.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Session
	byConn map[uuid.UUID]string
}

// Removal reports the outcome of removing a connection's player.
type Removal struct {
	Session    *Session
	RoomCode   string
	Username   string
	RoomClosed bool
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]*Session),
		byConn: make(map[uuid.UUID]string),
	}
}

// CreateRoom allocates a fresh unique room code and registers a lobby-phase
// session with the creator as sole player and host.
func (r *Registry) CreateRoom(connID uuid.UUID, username string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := newRoomCode()
	for _, taken := r.rooms[code]; taken; _, taken = r.rooms[code] {
		code = newRoomCode()
	}

	s := NewSession(code, connID, username)
	r.rooms[code] = s
	r.byConn[connID] = code
	return s
}

// JoinRoom adds a connection to an existing room. A connection that already
// has a player in the room gets the existing session back unchanged
// (reconnect-safe); rejoined reports that case so the boundary can skip the
// join notification.
func (r *Registry) JoinRoom(code string, connID uuid.UUID, username string) (s *Session, rejoined bool, err error) {
	canonical := strings.ToUpper(code)

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rooms[canonical]
	if !ok {
		return nil, false, ErrRoomNotFound
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.player(connID) != nil {
		return s, true, nil
	}
	if s.hasUsername(username, connID) {
		return nil, false, ErrNameTaken
	}
	s.addPlayer(connID, username)
	r.byConn[connID] = canonical
	return s, false, nil
}

// RemovePlayer tears down a connection's membership: deletes the mapping,
// removes the player, reassigns the host if needed, and drops the room
// entirely once its last player is gone. Safe to call for connections that
// never joined anything.
func (r *Registry) RemovePlayer(connID uuid.UUID) (Removal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.byConn[connID]
	if !ok {
		return Removal{}, false
	}
	delete(r.byConn, connID)
	s, ok := r.rooms[code]
	if !ok {
		return Removal{}, false
	}

	s.Mu.Lock()
	username, removed, empty := s.removePlayer(connID)
	s.Mu.Unlock()
	if !removed {
		return Removal{}, false
	}
	if empty {
		delete(r.rooms, code)
	}

	return Removal{Session: s, RoomCode: code, Username: username, RoomClosed: empty}, true
}

// Session resolves a room by code, case-insensitively.
func (r *Registry) Session(code string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rooms[strings.ToUpper(code)]
	return s, ok
}

// SessionByConn resolves the room a connection currently belongs to.
func (r *Registry) SessionByConn(connID uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.byConn[connID]
	if !ok {
		return nil, false
	}
	s, ok := r.rooms[code]
	return s, ok
}

func newRoomCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}
