package keymap

import (
	"fmt"
	"slices"
)

// Resolver maps chords to actions, consulting user overrides before defaults.
type Resolver struct {
	defaults map[string]Action   // chord -> action
	user     map[string]Action   // chord -> action
	byAction map[Action][]string // action -> default chords (for help)
}

// NewResolver creates a resolver from default bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		defaults: make(map[string]Action),
		user:     make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			chord := NormalizeChord(key)
			r.defaults[chord] = b.Action
			r.byAction[b.Action] = append(r.byAction[b.Action], chord)
		}
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// WithOverrides returns a copy of the resolver with the given user bindings
// (chord -> action) layered over the defaults.
func (r *Resolver) WithOverrides(overrides map[string]Action) *Resolver {
	out := &Resolver{
		defaults: r.defaults,
		user:     make(map[string]Action, len(overrides)),
		byAction: r.byAction,
	}
	for chord, a := range overrides {
		if a == ActionNone {
			continue
		}
		out.user[NormalizeChord(chord)] = a
	}
	return out
}

// ParseOverrides converts a config table of chord -> action name. Entries
// naming unknown actions are skipped and reported.
func ParseOverrides(raw map[string]string) (map[string]Action, []error) {
	out := make(map[string]Action, len(raw))
	var errs []error
	for chord, name := range raw {
		a, ok := ParseAction(name)
		if !ok {
			errs = append(errs, fmt.Errorf("keybinding %q: unknown action %q", chord, name))
			continue
		}
		out[chord] = a
	}
	return out, errs
}

// Resolve returns the action for a chord, or ActionNone if unbound.
func (r *Resolver) Resolve(chord string) Action {
	chord = NormalizeChord(chord)
	if a, ok := r.user[chord]; ok {
		return a
	}
	return r.defaults[chord]
}

// ResolveKey resolves an event by its chord. When nothing matches and only
// Shift is held on a named key, the bare key is tried with the same
// precedence. Shifted characters are already literal in their chord.
func (r *Resolver) ResolveKey(e KeyEvent) Action {
	if a := r.Resolve(e.Chord()); a != ActionNone {
		return a
	}
	if e.Ctrl || e.Alt || e.Meta || !e.Shift || printable(e.Key) {
		return ActionNone
	}
	return r.Resolve(e.Key)
}

// KeyFor returns the key named for an action in hints. A user binding wins;
// a default key is only offered when no user binding claims the action and
// the user has not rebound that chord to something else.
func (r *Resolver) KeyFor(action Action) (string, bool) {
	keys := r.KeysFor(action)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}

// KeysFor returns every effective chord for an action, user bindings first.
func (r *Resolver) KeysFor(action Action) []string {
	var user []string
	for chord, a := range r.user {
		if a == action {
			user = append(user, chord)
		}
	}
	if len(user) > 0 {
		slices.Sort(user)
		return user
	}
	var keys []string
	for _, chord := range r.byAction[action] {
		if _, overridden := r.user[chord]; overridden {
			continue
		}
		keys = append(keys, chord)
	}
	return keys
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
