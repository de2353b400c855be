package calendar

import (
	"errors"
	"sync"
)

// Failure kinds for delete operations. Reads never fail.
var (
	// ErrNotFound: the user has no calendar at all.
	ErrNotFound = errors.New("calendar: no schedule data for user")
	// ErrEmptyDate: the user's calendar has no entry for the date.
	ErrEmptyDate = errors.New("calendar: no events on date")
	// ErrEventNotFound: no stored event equals the requested text.
	ErrEventNotFound = errors.New("calendar: event not found on date")
)

// Store keeps per-user schedules in memory. Each user's calendar maps a
// YYYY-MM-DD key to the ordered list of event texts for that day; duplicates
// are allowed and insertion order is kept. A date key exists only while its
// list is non-empty.
//
// Locking is per user: the outer lock guards the user map, each user's own
// lock guards that user's days, so traffic for different users does not
// serialize.
type Store struct {
	mu    sync.RWMutex
	users map[string]*userCalendar
}

type userCalendar struct {
	mu   sync.RWMutex
	days map[string][]string
}

func NewStore() *Store {
	return &Store{users: make(map[string]*userCalendar)}
}

// Add appends text to the user's list for date, creating the user and the
// date entry as needed. It never fails and never deduplicates.
func (s *Store) Add(userID, date, text string) {
	uc := s.userCal(userID, true)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.days[date] = append(uc.days[date], text)
}

// Query returns a copy of the user's events for date. Unknown users and
// unknown dates read as empty, never as an error.
func (s *Store) Query(userID, date string) []string {
	uc := s.userCal(userID, false)
	if uc == nil {
		return nil
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	events := uc.days[date]
	if len(events) == 0 {
		return nil
	}
	out := make([]string, len(events))
	copy(out, events)
	return out
}

// DeleteAll removes the whole date entry from the user's calendar.
func (s *Store) DeleteAll(userID, date string) error {
	uc := s.userCal(userID, false)
	if uc == nil {
		return ErrNotFound
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.days[date]; !ok {
		return ErrEmptyDate
	}
	delete(uc.days, date)
	return nil
}

// DeleteOne removes the first event equal to text from the user's list for
// date. When the last event goes, the date entry goes with it.
func (s *Store) DeleteOne(userID, date, text string) error {
	uc := s.userCal(userID, false)
	if uc == nil {
		return ErrNotFound
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	events, ok := uc.days[date]
	if !ok {
		return ErrEmptyDate
	}
	for i, ev := range events {
		if ev == text {
			events = append(events[:i], events[i+1:]...)
			if len(events) == 0 {
				delete(uc.days, date)
			} else {
				uc.days[date] = events
			}
			return nil
		}
	}
	return ErrEventNotFound
}

func (s *Store) userCal(userID string, create bool) *userCalendar {
	s.mu.RLock()
	uc := s.users[userID]
	s.mu.RUnlock()
	if uc != nil || !create {
		return uc
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if uc = s.users[userID]; uc == nil {
		uc = &userCalendar{days: make(map[string][]string)}
		s.users[userID] = uc
	}
	return uc
}
