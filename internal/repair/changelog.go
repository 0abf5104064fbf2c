package repair

import "fmt"

type EntryKind int

const (
	KindFix EntryKind = iota
	KindFailure
	KindInfo
)

// Entry is one line of the user-facing change report.
type Entry struct {
	Message string    `json:"message"`
	Success bool      `json:"success"`
	Kind    EntryKind `json:"-"`
}

// ChangeLog is the ordered, append-only record of one pipeline pass.
type ChangeLog struct {
	entries []Entry
}

func (l *ChangeLog) Fixed(format string, args ...any) {
	l.entries = append(l.entries, Entry{Message: fmt.Sprintf(format, args...), Success: true, Kind: KindFix})
}

// Failed records a detected condition that was left as is.
func (l *ChangeLog) Failed(format string, args ...any) {
	l.entries = append(l.entries, Entry{Message: fmt.Sprintf(format, args...), Success: false, Kind: KindFailure})
}

func (l *ChangeLog) Info(format string, args ...any) {
	l.entries = append(l.entries, Entry{Message: fmt.Sprintf(format, args...), Success: true, Kind: KindInfo})
}

func (l *ChangeLog) Len() int { return len(l.entries) }

// Entries returns a copy of the log.
func (l *ChangeLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Modified reports whether the pass found anything beyond informational
// notes, fixed or not.
func (l *ChangeLog) Modified() bool {
	for _, e := range l.entries {
		if e.Kind != KindInfo {
			return true
		}
	}
	return false
}

func (l *ChangeLog) HasFailures() bool {
	for _, e := range l.entries {
		if e.Kind == KindFailure {
			return true
		}
	}
	return false
}
