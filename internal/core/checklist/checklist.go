// Package checklist models a condition checklist: an ordered set of named
// yes/no assertions about a listing's physical state.
//
// Order is preserved through JSON so that checklist_json and conditions_json
// round-trip exactly as the author wrote them. An entry may be unset (JSON
// null) until an inspector answers it.
package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/resale/internal/core/apperr"
)

// Entry is one named condition.
type Entry struct {
	Name    string
	Checked bool
	Unset   bool // no answer recorded yet
}

// Checklist is an ordered mapping of condition name to answer.
// The zero value is an empty checklist.
type Checklist struct {
	entries []Entry
}

// New builds a checklist from entries, rejecting blank or duplicate names.
func New(entries ...Entry) (Checklist, error) {
	var c Checklist
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return Checklist{}, fmt.Errorf("%w: checklist entry has an empty name", apperr.ErrValidation)
		}
		if c.index(name) >= 0 {
			return Checklist{}, fmt.Errorf("%w: duplicate checklist entry %q", apperr.ErrValidation, name)
		}
		c.entries = append(c.entries, Entry{Name: name, Checked: e.Checked && !e.Unset, Unset: e.Unset})
	}
	return c, nil
}

// MustNew is New for literals known to be valid.
func MustNew(entries ...Entry) Checklist {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Of is a shorthand for resolved entries: Of("clean", true, "working", false).
func Of(pairs ...any) Checklist {
	if len(pairs)%2 != 0 {
		panic("checklist.Of: odd number of arguments")
	}
	entries := make([]Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		entries = append(entries, Entry{Name: pairs[i].(string), Checked: pairs[i+1].(bool)})
	}
	return MustNew(entries...)
}

func (c Checklist) index(name string) int {
	for i, e := range c.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Len returns the number of entries.
func (c Checklist) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in order.
func (c Checklist) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns entry names in order.
func (c Checklist) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Name
	}
	return keys
}

// Get returns the entry for name.
func (c Checklist) Get(name string) (Entry, bool) {
	if i := c.index(name); i >= 0 {
		return c.entries[i], true
	}
	return Entry{}, false
}

// Set records an answer, appending the entry if it is new.
func (c *Checklist) Set(name string, checked bool) {
	if i := c.index(name); i >= 0 {
		c.entries[i] = Entry{Name: name, Checked: checked}
		return
	}
	c.entries = append(c.entries, Entry{Name: name, Checked: checked})
}

// TrueCount returns the number of entries answered true.
func (c Checklist) TrueCount() int {
	n := 0
	for _, e := range c.entries {
		if !e.Unset && e.Checked {
			n++
		}
	}
	return n
}

// TrueKeys returns the names answered true, in order.
func (c Checklist) TrueKeys() []string {
	var keys []string
	for _, e := range c.entries {
		if !e.Unset && e.Checked {
			keys = append(keys, e.Name)
		}
	}
	return keys
}

// UnsetKeys returns the names without an answer, in order.
func (c Checklist) UnsetKeys() []string {
	var keys []string
	for _, e := range c.entries {
		if e.Unset {
			keys = append(keys, e.Name)
		}
	}
	return keys
}

// Resolved reports whether every entry has a boolean answer.
func (c Checklist) Resolved() bool {
	for _, e := range c.entries {
		if e.Unset {
			return false
		}
	}
	return true
}

// SameKeys reports whether both checklists name exactly the same conditions.
// Order is not compared.
func (c Checklist) SameKeys(other Checklist) bool {
	if len(c.entries) != len(other.entries) {
		return false
	}
	for _, e := range c.entries {
		if other.index(e.Name) < 0 {
			return false
		}
	}
	return true
}

// MarshalJSON writes the checklist as a JSON object in entry order.
func (c Checklist) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		switch {
		case e.Unset:
			buf.WriteString("null")
		case e.Checked:
			buf.WriteString("true")
		default:
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order. Values must be
// true, false or null; any other value is a validation error.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: malformed checklist: %v", apperr.ErrValidation, err)
	}
	if tok == nil {
		*c = Checklist{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: checklist must be a JSON object", apperr.ErrValidation)
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: malformed checklist: %v", apperr.ErrValidation, err)
		}
		name := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: malformed checklist: %v", apperr.ErrValidation, err)
		}
		switch string(bytes.TrimSpace(raw)) {
		case "true":
			entries = append(entries, Entry{Name: name, Checked: true})
		case "false":
			entries = append(entries, Entry{Name: name})
		case "null":
			entries = append(entries, Entry{Name: name, Unset: true})
		default:
			return fmt.Errorf("%w: checklist entry %q must be true, false or null, got %s", apperr.ErrValidation, name, raw)
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: malformed checklist: %v", apperr.ErrValidation, err)
	}

	parsed, err := New(entries...)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse decodes a JSON checklist string. An empty string is an empty checklist.
func Parse(s string) (Checklist, error) {
	var c Checklist
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	if err := c.UnmarshalJSON([]byte(s)); err != nil {
		return Checklist{}, err
	}
	return c, nil
}

// String returns the JSON form.
func (c Checklist) String() string {
	b, _ := c.MarshalJSON()
	return string(b)
}
