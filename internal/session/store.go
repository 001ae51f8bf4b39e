package session

import (
	"errors"
	"strings"
	"sync"
)

// Title given to a session before its first message names it.
const draftTitle = "New chat"

// maxTitleLen is how many leading characters of the first message become
// the session title.
const maxTitleLen = 30

var (
	// ErrEmptyMessage indicates the message text trimmed to nothing.
	ErrEmptyMessage = errors.New("empty message")

	// ErrNotFound indicates the id matched neither the draft nor a
	// collection member.
	ErrNotFound = errors.New("session not found")
)

// Store is the single source of truth for chat sessions. It owns the
// ordered collection, at most one draft, and the current selection.
// All operations are safe for concurrent use by HTTP handlers.
type Store struct {
	mu        sync.Mutex
	sessions  []Session
	draft     *Session
	currentID string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a loaded collection and selection, discarding any
// previous state. Used once at startup after the persistence adapter
// has produced the initial collection.
func (s *Store) Replace(sessions []Session, currentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append([]Session(nil), sessions...)
	s.draft = nil
	s.currentID = currentID
}

// CreateDraft allocates a new draft session and selects it. If the current
// selection is already an empty draft this is a no-op, so repeated
// "new chat" requests don't stack drafts.
func (s *Store) CreateDraft() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createDraftLocked()
}

func (s *Store) createDraftLocked() Session {
	if s.draft != nil && s.currentID == s.draft.ID && len(s.draft.Messages) == 0 {
		return *s.draft
	}
	draft := Session{
		ID:        newID(),
		Title:     draftTitle,
		UpdatedAt: nowMillis(),
	}
	s.draft = &draft
	s.currentID = draft.ID
	return draft
}

// Select sets the current selection. The id is not validated; a stale id
// simply resolves to "no current session" on later reads.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

// CurrentID returns the id of the current selection, which may be empty.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// Current resolves the current selection against the draft and the
// collection.
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.currentID)
}

// Get returns the session with the given id, draft included.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) findLocked(id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}
	if s.draft != nil && s.draft.ID == id {
		return cloneSession(*s.draft), true
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return cloneSession(s.sessions[i]), true
		}
	}
	return Session{}, false
}

// Sessions returns a copy of the persisted collection in display order.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Session, len(s.sessions))
	for i := range s.sessions {
		out[i] = cloneSession(s.sessions[i])
	}
	return out
}

// Draft returns the draft session, if one exists.
func (s *Store) Draft() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Session{}, false
	}
	return cloneSession(*s.draft), true
}

// AppendUserMessage appends a user message to the session with the given
// id. Appending the first message to the draft promotes it: the draft gets
// a title derived from the text, moves to the front of the collection, and
// the draft slot clears. A persisted session with no messages gets the
// same derived title retroactively.
func (s *Store) AppendUserMessage(id, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:        newID(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: nowMillis(),
	}

	if s.draft != nil && s.draft.ID == id {
		promoted := *s.draft
		promoted.Title = deriveTitle(text)
		promoted.Messages = []Message{msg}
		promoted.UpdatedAt = msg.Timestamp
		s.sessions = append([]Session{promoted}, s.sessions...)
		s.draft = nil
		return msg, nil
	}

	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		if len(s.sessions[i].Messages) == 0 {
			s.sessions[i].Title = deriveTitle(text)
		}
		s.sessions[i].Messages = append(s.sessions[i].Messages, msg)
		s.sessions[i].UpdatedAt = msg.Timestamp
		return msg, nil
	}

	return Message{}, ErrNotFound
}

// AppendAssistantMessage appends an assistant reply to the named session.
// It reports false when the session no longer exists, in which case the
// reply is dropped; a reply can arrive after its session was deleted.
func (s *Store) AppendAssistantMessage(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		s.sessions[i].Messages = append(s.sessions[i].Messages, Message{
			ID:        newID(),
			Role:      RoleAssistant,
			Content:   text,
			Timestamp: nowMillis(),
		})
		return true
	}
	return false
}

// Rename replaces the title of the draft or collection member matching id.
// No-op when neither matches.
func (s *Store) Rename(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil && s.draft.ID == id {
		s.draft.Title = title
		return
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i].Title = title
			return
		}
	}
}

// Delete removes the session with the given id. When the deleted session
// was current, selection moves to the first remaining collection member;
// if none remain a fresh draft is created immediately, so the store never
// exposes a "no sessions, no draft" state.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil && s.draft.ID == id {
		s.draft = nil
		if s.currentID == id {
			if len(s.sessions) > 0 {
				s.currentID = s.sessions[0].ID
			} else {
				s.currentID = ""
				s.createDraftLocked()
			}
		}
		return
	}

	filtered := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.ID != id {
			filtered = append(filtered, sess)
		}
	}
	s.sessions = filtered

	if s.currentID == id {
		if len(s.sessions) > 0 {
			s.currentID = s.sessions[0].ID
		} else {
			s.currentID = ""
			s.createDraftLocked()
		}
	}
}

// deriveTitle truncates the first message to the session title, counting
// runes so multi-byte text doesn't split mid-character.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTitleLen {
		return text
	}
	return string(runes[:maxTitleLen]) + "..."
}

func cloneSession(sess Session) Session {
	sess.Messages = append([]Message(nil), sess.Messages...)
	return sess
}
