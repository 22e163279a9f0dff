package cmdline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/llehouerou/vimusic/internal/playlist"
)

// JumpTarget is the argument of :jump, either a percentage or a timestamp.
type JumpTarget struct {
	Percent   float64
	Position  time.Duration
	IsPercent bool
}

// ParseJump reads "0".."100" (optionally with '%'), "m:ss" or "h:mm:ss".
func ParseJump(arg string) (JumpTarget, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return JumpTarget{}, fmt.Errorf("%w: jump <0-100>|<m:ss>|<h:mm:ss>", ErrMissingArgument)
	}
	if strings.Contains(arg, ":") {
		pos, err := ParseTimestamp(arg)
		if err != nil {
			return JumpTarget{}, err
		}
		return JumpTarget{Position: pos}, nil
	}
	p, err := parseNumber(strings.TrimSuffix(arg, "%"))
	if err != nil || p < 0 || p > 100 {
		return JumpTarget{}, fmt.Errorf("%w: percent must be 0-100: %s", ErrInvalidArgument, arg)
	}
	return JumpTarget{Percent: p, IsPercent: true}, nil
}

// maxSleepMinutes keeps a sleep duration inside time.Duration.
const maxSleepMinutes = 60 * 24 * 365

// parseNumber is strconv.ParseFloat restricted to finite values, so "nan"
// and "inf" are rejected like any other malformed number.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

// ParseTimestamp reads "m:ss" or "h:mm:ss".
func ParseTimestamp(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: timestamp %q", ErrInvalidArgument, s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: timestamp %q", ErrInvalidArgument, s)
		}
		// Every field after the first is a base-60 digit.
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: timestamp %q", ErrInvalidArgument, s)
		}
		nums[i] = n
	}
	var total int
	for _, n := range nums {
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}

// SleepMode says how a :sleep argument changes the timer.
type SleepMode int

const (
	SleepShow SleepMode = iota
	SleepSet
	SleepAdd
	SleepCancel
)

// ParseSleep reads "", "<min>", "+<min>", "-<min>" or "off". A relative
// change is returned as SleepAdd with a signed duration.
func ParseSleep(arg string) (SleepMode, time.Duration, error) {
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(arg) {
	case "":
		return SleepShow, 0, nil
	case "off", "cancel", "0":
		return SleepCancel, 0, nil
	}
	mode := SleepSet
	if arg[0] == '+' || arg[0] == '-' {
		mode = SleepAdd
	}
	minutes, err := parseNumber(arg)
	if err != nil || (mode == SleepSet && minutes <= 0) || math.Abs(minutes) > maxSleepMinutes {
		return SleepShow, 0, fmt.Errorf("%w: sleep [+|-]<minutes>: %s", ErrInvalidArgument, arg)
	}
	return mode, time.Duration(minutes * float64(time.Minute)), nil
}

// ParseRename reads "<old> > <new>".
func ParseRename(rest string) (oldName, newName string, err error) {
	oldName, newName, ok := strings.Cut(rest, ">")
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if !ok || oldName == "" || newName == "" {
		return "", "", fmt.Errorf("%w: rename <old> > <new>", ErrInvalidArgument)
	}
	return oldName, newName, nil
}

// ParseSort reads "name", "duration" or "path", with '!' to reverse.
func ParseSort(arg string, bang bool) (playlist.SortKey, bool, error) {
	arg = strings.TrimSpace(arg)
	reverse := bang
	if trimmed, ok := strings.CutSuffix(arg, "!"); ok {
		arg, reverse = trimmed, true
	}
	if arg == "" {
		return playlist.SortByName, false, fmt.Errorf("%w: sort <name|duration|path>[!]", ErrMissingArgument)
	}
	key, ok := playlist.ParseSortKey(arg)
	if !ok {
		return playlist.SortByName, false, fmt.Errorf("%w: sort key %q", ErrInvalidArgument, arg)
	}
	return key, reverse, nil
}

// ParseVolume reads a percentage 0-100 into a level in [0, 1].
func ParseVolume(arg string) (float64, error) {
	n, err := parseNumber(strings.TrimSuffix(strings.TrimSpace(arg), "%"))
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: volume must be 0-100: %s", ErrInvalidArgument, arg)
	}
	return n / 100, nil
}

// ParseSpeed reads a playback rate such as "1.5" or "1.5x". Values outside
// the engine range are left for the engine to clamp.
func ParseSpeed(arg string) (float64, error) {
	v, err := parseNumber(strings.TrimSuffix(strings.TrimSpace(arg), "x"))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: speed <0.25-3>: %s", ErrInvalidArgument, arg)
	}
	return v, nil
}

// ParseMark reads a single bookmark letter.
func ParseMark(arg string) (rune, error) {
	arg = strings.TrimSpace(arg)
	if utf8.RuneCountInString(arg) != 1 {
		return 0, fmt.Errorf("%w: mark <a-z>", ErrInvalidArgument)
	}
	r, _ := utf8.DecodeRuneInString(arg)
	if r < 'a' || r > 'z' {
		return 0, fmt.Errorf("%w: mark <a-z>", ErrInvalidArgument)
	}
	return r, nil
}

// ParseIndex reads a 1-based list number and returns it 0-based.
func ParseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: expected 1-%d: %s", ErrInvalidArgument, n, arg)
	}
	return i - 1, nil
}
