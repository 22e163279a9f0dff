// Package settings holds the user-tunable options changed with :set.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownOption is returned for option names that match neither a full
// name nor an alias.
var ErrUnknownOption = errors.New("unknown option")

// ErrInvalidValue is returned when an option value cannot be applied.
var ErrInvalidValue = errors.New("invalid value")

// Settings is the flat set of tunables. Field tags are the persisted keys.
type Settings struct {
	RelativeNumber bool    `json:"relativenumber"`
	Number         bool    `json:"number"`
	SeekTime       float64 `json:"seektime"`
	SeekTimeLarge  float64 `json:"seektimelarge"`
	SpeedStep      float64 `json:"speedstep"`
	VolumeStep     float64 `json:"volumestep"`
}

// Default returns the settings used when nothing has been persisted.
func Default() Settings {
	return Settings{
		RelativeNumber: false,
		Number:         true,
		SeekTime:       5,
		SeekTimeLarge:  30,
		SpeedStep:      0.25,
		VolumeStep:     0.05,
	}
}

type kind int

const (
	kindBool kind = iota
	kindNumber
)

type option struct {
	name  string
	alias string
	kind  kind
	b     func(*Settings) *bool
	n     func(*Settings) *float64
}

var options = []option{
	{name: "relativenumber", alias: "rnu", kind: kindBool, b: func(s *Settings) *bool { return &s.RelativeNumber }},
	{name: "number", alias: "nu", kind: kindBool, b: func(s *Settings) *bool { return &s.Number }},
	{name: "seektime", alias: "st", kind: kindNumber, n: func(s *Settings) *float64 { return &s.SeekTime }},
	{name: "seektimelarge", alias: "stl", kind: kindNumber, n: func(s *Settings) *float64 { return &s.SeekTimeLarge }},
	{name: "speedstep", alias: "ss", kind: kindNumber, n: func(s *Settings) *float64 { return &s.SpeedStep }},
	{name: "volumestep", alias: "vs", kind: kindNumber, n: func(s *Settings) *float64 { return &s.VolumeStep }},
}

// Names returns all canonical option names in display order.
func Names() []string {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.name
	}
	return names
}

func lookup(name string) (option, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, o := range options {
		if o.name == name || o.alias == name {
			return o, true
		}
	}
	return option{}, false
}

// Get returns an option's value formatted for display ("number", "norelativenumber", "seektime=5").
func (s *Settings) Get(name string) (string, error) {
	opt, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return s.format(opt), nil
}

func (s *Settings) format(opt option) string {
	if opt.kind == kindBool {
		if *opt.b(s) {
			return opt.name
		}
		return "no" + opt.name
	}
	return opt.name + "=" + strconv.FormatFloat(*opt.n(s), 'f', -1, 64)
}

// String lists every option the way a bare :set shows them.
func (s *Settings) String() string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = s.format(o)
	}
	return strings.Join(parts, "  ")
}

// Apply interprets one :set argument. Accepted forms are "opt" (enable a
// boolean or show a number), "noopt", "invopt" and "opt!" (toggle), "opt?"
// and "opt=value". The returned string is the message to show, empty when
// the change speaks for itself.
func (s *Settings) Apply(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return s.String(), nil
	}

	if name, value, ok := strings.Cut(arg, "="); ok {
		opt, found := lookup(name)
		if !found {
			return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
		return "", s.assign(opt, value)
	}

	if name, ok := strings.CutSuffix(arg, "?"); ok {
		return s.Get(name)
	}

	if name, ok := strings.CutSuffix(arg, "!"); ok {
		return s.toggle(name)
	}

	if opt, ok := lookup(arg); ok {
		if opt.kind == kindNumber {
			return s.format(opt), nil
		}
		*opt.b(s) = true
		return "", nil
	}

	lower := strings.ToLower(arg)
	if name, ok := strings.CutPrefix(lower, "inv"); ok {
		if _, found := lookup(name); found {
			return s.toggle(name)
		}
	}
	if name, ok := strings.CutPrefix(lower, "no"); ok {
		opt, found := lookup(name)
		if !found {
			return "", fmt.Errorf("%w: %s", ErrUnknownOption, arg)
		}
		if opt.kind != kindBool {
			return "", fmt.Errorf("%w: %s is not a boolean option", ErrInvalidValue, opt.name)
		}
		*opt.b(s) = false
		return "", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownOption, arg)
}

func (s *Settings) toggle(name string) (string, error) {
	opt, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	if opt.kind != kindBool {
		return "", fmt.Errorf("%w: %s is not a boolean option", ErrInvalidValue, opt.name)
	}
	p := opt.b(s)
	*p = !*p
	return "", nil
}

func (s *Settings) assign(opt option, value string) error {
	value = strings.TrimSpace(value)
	if opt.kind == kindBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%s", ErrInvalidValue, opt.name, value)
		}
		*opt.b(s) = b
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s=%s", ErrInvalidValue, opt.name, value)
	}
	*opt.n(s) = f
	return nil
}

// Marshal encodes the settings as a flat JSON object.
func (s Settings) Marshal() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes persisted settings. Keys missing from data keep their
// default value; non-positive numbers are replaced by the default.
func Unmarshal(data string) (Settings, error) {
	s := Default()
	if strings.TrimSpace(data) == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Default(), err
	}
	def := Default()
	for _, o := range options {
		if o.kind == kindNumber && *o.n(&s) <= 0 {
			*o.n(&s) = *o.n(&def)
		}
	}
	return s, nil
}
