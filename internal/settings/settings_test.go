//nolint:goconst // test cases intentionally repeat strings for readability
package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.False(t, s.RelativeNumber)
	assert.True(t, s.Number)
	assert.InDelta(t, 5.0, s.SeekTime, 1e-9)
	assert.InDelta(t, 30.0, s.SeekTimeLarge, 1e-9)
	assert.InDelta(t, 0.25, s.SpeedStep, 1e-9)
	assert.InDelta(t, 0.05, s.VolumeStep, 1e-9)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"rnu", "relativenumber", true},
		{"relativenumber", "relativenumber", true},
		{"nu", "number", true},
		{"st", "seektime", true},
		{"STL", "seektimelarge", true},
		{"ss", "speedstep", true},
		{"vs", "volumestep", true},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Resolve(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, s Settings)
		wantMsg string
		wantErr error
	}{
		{
			name:  "enable boolean by alias",
			args:  []string{"rnu"},
			check: func(t *testing.T, s Settings) { assert.True(t, s.RelativeNumber) },
		},
		{
			name:  "disable boolean with no prefix",
			args:  []string{"nonu"},
			check: func(t *testing.T, s Settings) { assert.False(t, s.Number) },
		},
		{
			name:  "toggle with bang",
			args:  []string{"number!"},
			check: func(t *testing.T, s Settings) { assert.False(t, s.Number) },
		},
		{
			name:  "toggle with inv prefix",
			args:  []string{"invrnu"},
			check: func(t *testing.T, s Settings) { assert.True(t, s.RelativeNumber) },
		},
		{
			name:  "assign number",
			args:  []string{"st=10"},
			check: func(t *testing.T, s Settings) { assert.InDelta(t, 10.0, s.SeekTime, 1e-9) },
		},
		{
			name:  "assign fractional step",
			args:  []string{"volumestep=0.1"},
			check: func(t *testing.T, s Settings) { assert.InDelta(t, 0.1, s.VolumeStep, 1e-9) },
		},
		{
			name:    "query number",
			args:    []string{"stl?"},
			wantMsg: "seektimelarge=30",
		},
		{
			name:    "query boolean",
			args:    []string{"rnu?"},
			wantMsg: "norelativenumber",
		},
		{
			name:    "bare number name shows value",
			args:    []string{"ss"},
			wantMsg: "speedstep=0.25",
		},
		{
			name:    "unknown option",
			args:    []string{"wrap"},
			wantErr: ErrUnknownOption,
		},
		{
			name:    "no prefix on number",
			args:    []string{"nost"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative number rejected",
			args:    []string{"st=-1"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "non numeric rejected",
			args:    []string{"st=abc"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "nan rejected",
			args:    []string{"st=nan"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "infinity rejected",
			args:    []string{"vs=+Inf"},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			var msg string
			var err error
			for _, a := range tt.args {
				msg, err = s.Apply(a)
			}
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, Default(), s, "failed apply must not mutate")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestApply_EmptyListsAll(t *testing.T) {
	s := Default()
	msg, err := s.Apply("")
	require.NoError(t, err)
	assert.Contains(t, msg, "norelativenumber")
	assert.Contains(t, msg, "number")
	assert.Contains(t, msg, "volumestep=0.05")
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Default()
	s.RelativeNumber = true
	s.SeekTime = 12

	data, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, data, `"relativenumber":true`)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestUnmarshal_MissingKeysKeepDefaults(t *testing.T) {
	got, err := Unmarshal(`{"seektime":7}`)
	require.NoError(t, err)
	want := Default()
	want.SeekTime = 7
	assert.Equal(t, want, got)
}

func TestUnmarshal_Empty(t *testing.T) {
	got, err := Unmarshal("")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestUnmarshal_Invalid(t *testing.T) {
	got, err := Unmarshal("{not json")
	require.Error(t, err)
	assert.Equal(t, Default(), got)
}
