package calendar

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestAddAndQuery(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	s.Add("u1", "2024-06-20", "開會")

	got := s.Query("u1", "2024-06-20")
	if len(got) != 2 || got[0] != "看牙醫" || got[1] != "開會" {
		t.Fatalf("unexpected events: %v", got)
	}

	if got := s.Query("u1", "2024-06-21"); len(got) != 0 {
		t.Fatalf("unknown date should read empty, got %v", got)
	}
	if got := s.Query("nobody", "2024-06-20"); len(got) != 0 {
		t.Fatalf("unknown user should read empty, got %v", got)
	}
}

func TestAddIsNotIdempotent(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	s.Add("u1", "2024-06-20", "看牙醫")
	if got := s.Query("u1", "2024-06-20"); len(got) != 2 {
		t.Fatalf("duplicate adds must both be stored, got %v", got)
	}
}

func TestQueryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	got := s.Query("u1", "2024-06-20")
	got[0] = "mutated"
	if again := s.Query("u1", "2024-06-20"); again[0] != "看牙醫" {
		t.Fatalf("internal state mutated via returned slice")
	}
}

func TestDeleteAll(t *testing.T) {
	s := NewStore()

	if err := s.DeleteAll("u1", "2024-06-20"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s.Add("u1", "2024-06-20", "看牙醫")
	if err := s.DeleteAll("u1", "2024-06-21"); !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("expected ErrEmptyDate, got %v", err)
	}

	if err := s.DeleteAll("u1", "2024-06-20"); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	if got := s.Query("u1", "2024-06-20"); len(got) != 0 {
		t.Fatalf("events survived delete: %v", got)
	}
	// the date key itself is gone, not just emptied
	if err := s.DeleteAll("u1", "2024-06-20"); !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("expected ErrEmptyDate after removal, got %v", err)
	}
}

func TestDeleteOne(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	s.Add("u1", "2024-06-20", "開會")

	if err := s.DeleteOne("u2", "2024-06-20", "看牙醫"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteOne("u1", "2024-06-21", "看牙醫"); !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("expected ErrEmptyDate, got %v", err)
	}
	if err := s.DeleteOne("u1", "2024-06-20", "午餐"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	if err := s.DeleteOne("u1", "2024-06-20", "看牙醫"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got := s.Query("u1", "2024-06-20")
	if len(got) != 1 || got[0] != "開會" {
		t.Fatalf("unexpected remainder: %v", got)
	}
}

func TestDeleteOneRemovesSingleOccurrence(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.Add("u1", "2024-06-20", "看牙醫")
	}
	if err := s.DeleteOne("u1", "2024-06-20", "看牙醫"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := s.Query("u1", "2024-06-20"); len(got) != 2 {
		t.Fatalf("expected exactly one occurrence removed, got %v", got)
	}
}

func TestDeleteOneDropsEmptyDate(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	if err := s.DeleteOne("u1", "2024-06-20", "看牙醫"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.DeleteAll("u1", "2024-06-20"); !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("empty date entry should be gone, got %v", err)
	}
}

func TestDeleteEmptyNameNeverMatches(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	if err := s.DeleteOne("u1", "2024-06-20", ""); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("empty event name must never match, got %v", err)
	}
}

func TestUserIsolation(t *testing.T) {
	s := NewStore()
	s.Add("u1", "2024-06-20", "看牙醫")
	s.Add("u2", "2024-06-20", "開會")

	if err := s.DeleteAll("u1", "2024-06-20"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got := s.Query("u2", "2024-06-20")
	if len(got) != 1 || got[0] != "開會" {
		t.Fatalf("u2 state changed by u1 mutation: %v", got)
	}
}

func TestConcurrentAdds(t *testing.T) {
	s := NewStore()
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i%5)
			s.Add(user, "2024-06-20", fmt.Sprintf("event-%d", i))
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 5; i++ {
		total += len(s.Query(fmt.Sprintf("u%d", i), "2024-06-20"))
	}
	if total != n {
		t.Fatalf("lost adds under concurrency: got %d, want %d", total, n)
	}
}
