// pattern: Functional Core

package status

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrFrozen is returned when writing to an aggregate after Freeze.
	ErrFrozen = errors.New("aggregate is frozen")
	// ErrUnknownProject is returned when writing a name that was never enumerated.
	ErrUnknownProject = errors.New("unknown project")
	// ErrDuplicateWrite is returned when a project's outcome is written twice.
	ErrDuplicateWrite = errors.New("outcome already recorded")
)

// Aggregate maps project names to outcomes, keeping enumeration order.
//
// Keys are reserved up front by NewAggregate and each may be written once.
// The type is not safe for concurrent use; a scan funnels every write
// through a single goroutine.
type Aggregate struct {
	names    []string
	outcomes map[string]Outcome
	written  map[string]bool
	frozen   bool
}

// NewAggregate reserves the given names, in order. Duplicate names are
// collapsed to their first position.
func NewAggregate(names []string) *Aggregate {
	a := &Aggregate{
		names:    make([]string, 0, len(names)),
		outcomes: make(map[string]Outcome, len(names)),
		written:  make(map[string]bool, len(names)),
	}
	for _, name := range names {
		if _, ok := a.outcomes[name]; ok {
			continue
		}
		a.names = append(a.names, name)
		a.outcomes[name] = Outcome{}
	}
	return a
}

// Set records the outcome for name.
func (a *Aggregate) Set(name string, o Outcome) error {
	if a.frozen {
		return fmt.Errorf("set %q: %w", name, ErrFrozen)
	}
	if _, ok := a.outcomes[name]; !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownProject)
	}
	if a.written[name] {
		return fmt.Errorf("set %q: %w", name, ErrDuplicateWrite)
	}
	a.outcomes[name] = o
	a.written[name] = true
	return nil
}

// Freeze makes the aggregate read-only.
func (a *Aggregate) Freeze() {
	a.frozen = true
}

// Frozen reports whether Freeze has been called.
func (a *Aggregate) Frozen() bool {
	return a.frozen
}

// Complete reports whether every reserved name has been written.
func (a *Aggregate) Complete() bool {
	return len(a.written) == len(a.names)
}

// Len returns the number of projects.
func (a *Aggregate) Len() int {
	return len(a.names)
}

// Names returns project names in enumeration order.
func (a *Aggregate) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Get returns the outcome for name.
func (a *Aggregate) Get(name string) (Outcome, bool) {
	o, ok := a.outcomes[name]
	return o, ok
}

// Filter returns, in order, the names whose outcome satisfies keep.
func (a *Aggregate) Filter(keep func(Outcome) bool) []string {
	var out []string
	for _, name := range a.names {
		if keep(a.outcomes[name]) {
			out = append(out, name)
		}
	}
	return out
}

// WithError returns the names whose terminal error code is code.
func (a *Aggregate) WithError(code ErrorCode) []string {
	return a.Filter(func(o Outcome) bool { return o.ErrorCode == code })
}

// WithWarning returns the names that recorded code as an advisory failure.
func (a *Aggregate) WithWarning(code ErrorCode) []string {
	return a.Filter(func(o Outcome) bool { return o.HasWarning(code) })
}

// NeedsAttention returns the names with unpushed, uncommitted or
// (unless skipUntracked) untracked work.
func (a *Aggregate) NeedsAttention(skipUntracked bool) []string {
	return a.Filter(func(o Outcome) bool { return o.NeedsAttention(skipUntracked) })
}

// MarshalJSON encodes the aggregate as an object whose keys keep
// enumeration order.
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.outcomes[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON. Every decoded
// key counts as written; the result is not frozen.
func (a *Aggregate) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("aggregate: expected object, got %v", tok)
	}

	fresh := NewAggregate(nil)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("aggregate: expected key, got %v", tok)
		}
		var o Outcome
		if err := dec.Decode(&o); err != nil {
			return fmt.Errorf("aggregate: project %q: %w", name, err)
		}
		if _, dup := fresh.outcomes[name]; dup {
			return fmt.Errorf("aggregate: project %q: %w", name, ErrDuplicateWrite)
		}
		fresh.names = append(fresh.names, name)
		fresh.outcomes[name] = o
		fresh.written[name] = true
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = *fresh
	return nil
}
