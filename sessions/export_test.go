package sessions

import "time"

func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
	m.codec.now = now
}

func (r *InMemoryRepo) SetClock(now func() time.Time) {
	r.now = now
}
