package game

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dividing-by-zaro/ugg-poetry/internal/models"
)

// TickFunc receives the whole seconds remaining once per second while a
// room's countdown is live.
type TickFunc func(s *Session, secondsLeft int)

// ExpireFunc runs after a countdown reaches zero and cancels itself. It is
// expected to drive EndTurn and broadcast the resulting transition.
type ExpireFunc func(s *Session)

// TimerManager runs at most one live countdown per room, keyed by room code.
// Arming a room implicitly cancels its previous countdown; Clear is O(1) and
// idempotent. Each countdown self-cancels at tick time if the session has
// left the playing phase by some other path, so a stale timer can never fire
// into an inconsistent phase.
type TimerManager struct {
	clock    Clock
	logger   *logrus.Logger
	onTick   TickFunc
	onExpire ExpireFunc

	mu     sync.Mutex
	timers map[string]chan struct{}
}

func NewTimerManager(clock Clock, logger *logrus.Logger, onTick TickFunc, onExpire ExpireFunc) *TimerManager {
	return &TimerManager{
		clock:    clock,
		logger:   logger,
		onTick:   onTick,
		onExpire: onExpire,
		timers:   make(map[string]chan struct{}),
	}
}

// Arm starts a countdown for the session's configured turn duration, setting
// the absolute deadline on the session and replacing any countdown already
// running for the room.
func (m *TimerManager) Arm(s *Session) {
	s.Mu.Lock()
	seconds := s.TimerSeconds
	s.TimerEndTime = m.clock.Now().Add(time.Duration(seconds) * time.Second)
	s.Mu.Unlock()

	m.mu.Lock()
	if stop, ok := m.timers[s.RoomCode]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	m.timers[s.RoomCode] = stop
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"room":    s.RoomCode,
		"seconds": seconds,
	}).Debug("turn timer armed")

	go m.run(s, stop)
}

// Clear cancels the countdown for a room if one is live.
func (m *TimerManager) Clear(roomCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stop, ok := m.timers[roomCode]; ok {
		close(stop)
		delete(m.timers, roomCode)
	}
}

func (m *TimerManager) run(s *Session, stop chan struct{}) {
	ticker := m.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.Chan():
			s.Mu.Lock()
			if s.Phase != models.PhasePlaying || s.TimerEndTime.IsZero() {
				s.Mu.Unlock()
				m.logger.WithField("room", s.RoomCode).Debug("turn timer self-cancelled, room no longer playing")
				m.detach(s.RoomCode, stop)
				return
			}
			left := remainingSeconds(s.TimerEndTime, now)
			s.Mu.Unlock()

			m.onTick(s, left)
			if left <= 0 {
				m.detach(s.RoomCode, stop)
				m.onExpire(s)
				return
			}
		}
	}
}

// detach removes this countdown's entry without closing the channel (the
// goroutine is exiting on its own). A newer countdown for the same room is
// left untouched.
func (m *TimerManager) detach(roomCode string, stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.timers[roomCode]; ok && cur == stop {
		delete(m.timers, roomCode)
	}
}

// remainingSeconds is the countdown value clients display: whole seconds
// until the deadline, rounded up, floored at zero.
func remainingSeconds(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
