package ws

import "sync"

// SessionInfo is the participant identity bound to one live connection.
type SessionInfo struct {
	UID    string
	Number int
}

// Presence tracks which sessions are currently online. State is purely
// in-memory: a restart means every session is presumed disconnected and
// the map rebuilds as clients reconnect. The count is per session, not
// per distinct participant, so a second device counts again.
type Presence struct {
	mu       sync.RWMutex
	sessions map[string]SessionInfo
}

func NewPresence() *Presence {
	return &Presence{
		sessions: make(map[string]SessionInfo),
	}
}

// Register records a session as online and returns the new total.
func (p *Presence) Register(sessionID string, info SessionInfo) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[sessionID] = info
	return len(p.sessions)
}

// Unregister removes a session and returns the new total. Unknown session
// IDs are a no-op, so a transport-level double disconnect cannot drive the
// count negative.
func (p *Presence) Unregister(sessionID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, sessionID)
	return len(p.sessions)
}

func (p *Presence) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}

// Lookup returns the identity bound to a session, if it joined.
func (p *Presence) Lookup(sessionID string) (SessionInfo, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	info, ok := p.sessions[sessionID]
	return info, ok
}

// HasOtherSession reports whether the participant has a live session other
// than the given one. Used to keep the stored is_online flag truthful for
// multi-device participants.
func (p *Presence) HasOtherSession(uid, sessionID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for id, info := range p.sessions {
		if id != sessionID && info.UID == uid {
			return true
		}
	}
	return false
}
