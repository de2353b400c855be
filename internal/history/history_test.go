package history

import "testing"

func TestAppendOrderAndClear(t *testing.T) {
	l := NewLog()
	l.AppendUser("u1", "你好嗎")
	l.AppendBot("我很好！")
	l.AppendUser("u2", "新聞")

	got := l.Snapshot()
	if len(got) != 3 {
		t.Fatalf("unexpected length: %d", len(got))
	}
	if got[0].User != "u1" || got[0].Message != "你好嗎" || got[0].Bot != "" {
		t.Fatalf("unexpected entry 0: %+v", got[0])
	}
	if got[1].Bot != "我很好！" || got[1].User != "" {
		t.Fatalf("unexpected entry 1: %+v", got[1])
	}
	if got[2].User != "u2" || got[2].Message != "新聞" {
		t.Fatalf("unexpected entry 2: %+v", got[2])
	}

	l.Clear()
	if len(l.Snapshot()) != 0 {
		t.Fatalf("clear did not empty the log")
	}

	// log stays usable after a clear
	l.AppendUser("u1", "again")
	if len(l.Snapshot()) != 1 {
		t.Fatalf("append after clear lost")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	l := NewLog()
	l.AppendUser("u1", "hello")
	snap := l.Snapshot()
	snap[0].Message = "mutated"
	if l.Snapshot()[0].Message != "hello" {
		t.Fatalf("internal state mutated via snapshot")
	}
}

type fakeMirror struct {
	appended []Entry
	resets   int
	err      error
}

func (f *fakeMirror) AppendEntry(e Entry) error {
	f.appended = append(f.appended, e)
	return f.err
}

func (f *fakeMirror) Reset() error {
	f.resets++
	return f.err
}

func TestMirrorReceivesAppendsAndClears(t *testing.T) {
	fm := &fakeMirror{}
	l := NewLogWithMirror(fm)
	l.AppendUser("u1", "hi")
	l.AppendBot("hello")
	l.Clear()

	if len(fm.appended) != 2 || fm.resets != 1 {
		t.Fatalf("mirror not driven: %+v resets=%d", fm.appended, fm.resets)
	}
}
