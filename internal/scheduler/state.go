package scheduler

import (
	"sync"
	"time"
)

// runState guarda a exclusão local de uma execução e os horários da última
type runState struct {
	mu          sync.Mutex
	running     bool
	startedAt   time.Time
	completedAt time.Time
}

// begin marca o início de uma execução; retorna false se já houver uma em andamento
func (s *runState) begin(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.startedAt = now
	return true
}

func (s *runState) end(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.completedAt = now
}

func (s *runState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

func (s *runState) snapshot() (running bool, startedAt, completedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running, s.startedAt, s.completedAt
}
