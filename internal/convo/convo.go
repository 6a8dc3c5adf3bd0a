// Package convo owns the per-channel conversational memory of the bridge:
// the ranked answers to the last question, the navigation cursor, echo mode,
// and the bookkeeping that ties outgoing bot messages back to the question
// and answer that produced them for reaction feedback.
package convo

import (
	"sync"
	"time"

	"ansa.app/bridge/internal/model"
)

// Key identifies one conversation: a bot talking in a channel.
type Key struct {
	BotID   string
	Channel string
}

// QA is the question/answer pair remembered for feedback on an outgoing
// message.
type QA struct {
	Question string
	Answer   model.Answer
}

type state struct {
	answers      []model.Answer
	lastQuestion string
	outgoing     map[string]string // message ts -> message text
	answerByText map[string]QA     // message text -> QA
	lastActive   time.Time
	index        int
	hasAnswers   bool
	echoMode     bool
}

// Store holds conversation state for all (bot, channel) pairs. All access
// goes through the mutex; idle entries are evicted after the configured TTL.
type Store struct {
	mu     sync.Mutex
	states map[Key]*state
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		states: make(map[Key]*state),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetAnswers replaces the remembered result set for the key with a fresh one
// and resets the navigation cursor to the top answer.
func (s *Store) SetAnswers(key Key, question string, answers []model.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(key)
	st.answers = answers
	st.index = 0
	st.lastQuestion = question
	st.hasAnswers = true
}

// HasAnswers reports whether a question has been answered for this key. The
// navigation and explain commands require it.
func (s *Store) HasAnswers(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.get(key)
	return ok && st.hasAnswers
}

// Current returns the answer under the cursor.
func (s *Store) Current(key Key) (model.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.get(key)
	if !ok || !st.hasAnswers || st.index >= len(st.answers) {
		return model.Answer{}, false
	}
	s.touch(key)
	return st.answers[st.index], true
}

// Advance moves the cursor to the next answer and returns it. When the list
// is exhausted the cursor stays in place and ok is false; the cursor never
// leaves the valid range.
func (s *Store) Advance(key Key) (model.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.get(key)
	if !ok || !st.hasAnswers {
		return model.Answer{}, false
	}
	next := st.index + 1
	if next >= len(st.answers) {
		return model.Answer{}, false
	}
	st.index = next
	s.touch(key)
	return st.answers[next], true
}

// LastQuestion returns the question that produced the current answer set.
func (s *Store) LastQuestion(key Key) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.get(key); ok {
		return st.lastQuestion
	}
	return ""
}

// ToggleEcho flips echo mode for the key and returns the new value.
func (s *Store) ToggleEcho(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(key)
	st.echoMode = !st.echoMode
	return st.echoMode
}

// EchoActive reports whether echo mode is on for the key.
func (s *Store) EchoActive(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.get(key)
	return ok && st.echoMode
}

// RecordOutgoing remembers the text of a message the bot itself sent, keyed
// by the platform timestamp, so a later reaction can be traced back.
func (s *Store) RecordOutgoing(key Key, ts, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(key)
	st.outgoing[ts] = text
}

// TrackAnswer remembers which question/answer pair produced a given message
// text, enabling reaction feedback on that message.
func (s *Store) TrackAnswer(key Key, question string, answer model.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.touch(key)
	st.answerByText[answer.AnswerText] = QA{Question: question, Answer: answer}
}

// ConsumeFeedback resolves a reacted-to message timestamp to its remembered
// question/answer pair and removes the entry, so feedback is applied at most
// once. ok is false when the timestamp does not belong to a tracked answer
// message or the entry was already consumed.
func (s *Store) ConsumeFeedback(key Key, ts string) (QA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.get(key)
	if !ok {
		return QA{}, false
	}
	text, ok := st.outgoing[ts]
	if !ok {
		return QA{}, false
	}
	qa, ok := st.answerByText[text]
	if !ok {
		return QA{}, false
	}
	delete(st.answerByText, text)
	s.touch(key)
	return qa, true
}

// Len reports the number of live conversations, after eviction.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return len(s.states)
}

// get returns the live state for key, evicting it first if expired.
func (s *Store) get(key Key) (*state, bool) {
	s.prune()
	st, ok := s.states[key]
	return st, ok
}

// touch returns the state for key, creating it if needed, and marks it
// active.
func (s *Store) touch(key Key) *state {
	s.prune()
	st, ok := s.states[key]
	if !ok {
		st = &state{
			outgoing:     make(map[string]string),
			answerByText: make(map[string]QA),
		}
		s.states[key] = st
	}
	st.lastActive = s.now()
	return st
}

func (s *Store) prune() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for key, st := range s.states {
		if st.lastActive.Before(cutoff) {
			delete(s.states, key)
		}
	}
}
