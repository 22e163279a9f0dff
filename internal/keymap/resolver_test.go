//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(Defaults)

	tests := []struct {
		chord string
		want  Action
	}{
		{"j", ActionMoveDown},
		{"ArrowDown", ActionMoveDown},
		{"down", ActionMoveDown},
		{"ctrl+d", ActionHalfPageDown},
		{"G", ActionGoToBottom},
		{"Space", ActionTogglePause},
		{":", ActionCommandMode},
		{"/", ActionFilterMode},
		{"Ctrl+c", ActionQuit},
		{"unknown", ActionNone},
		{"", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.chord))
		})
	}
}

func TestResolver_UserOverridePrecedence(t *testing.T) {
	overrides, errs := ParseOverrides(map[string]string{"j": "togglePause"})
	require.Empty(t, errs)

	r := NewResolver(Defaults).WithOverrides(overrides)

	assert.Equal(t, ActionTogglePause, r.Resolve("j"))
	assert.Equal(t, ActionMoveDown, r.Resolve("ArrowDown"), "other default keys still resolve")
}

func TestResolver_WithOverridesLeavesOriginal(t *testing.T) {
	base := NewResolver(Defaults)
	_ = base.WithOverrides(map[string]Action{"j": ActionStop})

	assert.Equal(t, ActionMoveDown, base.Resolve("j"))
}

func TestResolver_ResolveKeyShiftFallback(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionCycleView, []string{"Tab"}, "", "view"},
		{ActionMoveDown, []string{"j"}, "", "navigation"},
	})

	assert.Equal(t, ActionCycleView, r.ResolveKey(KeyEvent{Key: "Tab", Shift: true}))
	assert.Equal(t, ActionNone, r.ResolveKey(KeyEvent{Key: "Tab", Ctrl: true}),
		"no fallback when ctrl is held")
	assert.Equal(t, ActionNone, r.ResolveKey(KeyEvent{Key: "j", Shift: true}),
		"shifted letter is its own literal")
}

func TestResolver_KeyFor(t *testing.T) {
	base := NewResolver(Defaults)

	key, ok := base.KeyFor(ActionMoveDown)
	require.True(t, ok)
	assert.Equal(t, "j", key)

	r := base.WithOverrides(map[string]Action{
		"j":      ActionTogglePause,
		"Ctrl+n": ActionNextTrack,
	})

	key, ok = r.KeyFor(ActionTogglePause)
	require.True(t, ok)
	assert.Equal(t, "j", key, "user binding wins")

	key, ok = r.KeyFor(ActionMoveDown)
	require.True(t, ok)
	assert.Equal(t, "ArrowDown", key, "default key rebound by user is skipped")

	assert.Equal(t, []string{"Ctrl+n"}, r.KeysFor(ActionNextTrack))

	_, ok = r.KeyFor(ActionNone)
	assert.False(t, ok)
}

func TestParseOverrides_UnknownAction(t *testing.T) {
	got, errs := ParseOverrides(map[string]string{
		"x": "explode",
		"y": "STOP",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, map[string]Action{"y": ActionStop}, got)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
		ok   bool
	}{
		{"toggle_pause", ActionTogglePause, true},
		{"togglePause", ActionTogglePause, true},
		{"Toggle-Pause", ActionTogglePause, true},
		{"none", ActionNone, false},
		{"", ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAction(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_String(t *testing.T) {
	for _, a := range All() {
		assert.NotEmpty(t, a.String(), "action %d has no name", int(a))
		back, ok := ParseAction(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, back)
	}
	assert.Equal(t, "unknown", Action(-1).String())
}

func TestDefaults_NoDuplicateChords(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range Defaults {
		for _, k := range b.Keys {
			chord := NormalizeChord(k)
			prev, dup := seen[chord]
			assert.False(t, dup, "chord %q bound to %v and %v", chord, prev, b.Action)
			seen[chord] = b.Action
		}
	}
}

func TestByContext(t *testing.T) {
	for _, ctx := range Contexts {
		assert.NotEmpty(t, ByContext(ctx), ctx)
	}
	assert.Empty(t, ByContext("unknown"))
}
