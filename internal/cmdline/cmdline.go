// Package cmdline parses the ':' command line into commands.
package cmdline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCommand is returned for verbs missing from the command table.
	ErrUnknownCommand = errors.New("not an editor command")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("argument required")
	// ErrInvalidArgument is returned for malformed arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Verb identifies a command.
type Verb int

const (
	VerbNone Verb = iota
	VerbGotoLine
	VerbDeleteLines
	VerbRelativeLine
	VerbOpen
	VerbPlay
	VerbStop
	VerbNext
	VerbPrev
	VerbVolume
	VerbSpeed
	VerbSetDefault
	VerbClearDefault
	VerbSave
	VerbLoad
	VerbPlaylists
	VerbRename
	VerbDelPlaylist
	VerbReload
	VerbJump
	VerbAddLib
	VerbLibs
	VerbRemoveLib
	VerbScanLib
	VerbBack
	VerbArtists
	VerbDevices
	VerbDevice
	VerbSleep
	VerbMark
	VerbMarks
	VerbDelMark
	VerbSet
	VerbSort
	VerbReveal
	VerbRepeat
	VerbShuffle
	VerbLoop
	VerbQueue
	VerbHelp
	VerbQuit
)

// verbTable lists every verb with its accepted spellings, long form first.
var verbTable = []struct {
	verb  Verb
	names []string
}{
	{VerbOpen, []string{"open", "o"}},
	{VerbPlay, []string{"play", "p"}},
	{VerbStop, []string{"stop"}},
	{VerbNext, []string{"next", "n"}},
	{VerbPrev, []string{"prev", "previous"}},
	{VerbVolume, []string{"vol", "volume"}},
	{VerbSpeed, []string{"speed"}},
	{VerbSetDefault, []string{"setdefault", "sd"}},
	{VerbClearDefault, []string{"cleardefault", "cd"}},
	{VerbSave, []string{"save", "w"}},
	{VerbLoad, []string{"load", "e"}},
	{VerbPlaylists, []string{"playlists", "pl"}},
	{VerbRename, []string{"rename", "rn"}},
	{VerbDelPlaylist, []string{"delplaylist", "dp"}},
	{VerbReload, []string{"reload", "r"}},
	{VerbJump, []string{"jump", "j"}},
	{VerbAddLib, []string{"addlib", "al"}},
	{VerbLibs, []string{"libs", "library"}},
	{VerbRemoveLib, []string{"removelib", "rl"}},
	{VerbScanLib, []string{"scanlib", "scan", "sl"}},
	{VerbBack, []string{"back", "b"}},
	{VerbArtists, []string{"artists", "ar"}},
	{VerbDevices, []string{"devices", "dev"}},
	{VerbDevice, []string{"device", "d"}},
	{VerbSleep, []string{"sleep"}},
	{VerbMark, []string{"mark"}},
	{VerbMarks, []string{"marks"}},
	{VerbDelMark, []string{"delmark", "dm"}},
	{VerbSet, []string{"set"}},
	{VerbSort, []string{"sort"}},
	{VerbReveal, []string{"reveal", "rv"}},
	{VerbRepeat, []string{"repeat"}},
	{VerbShuffle, []string{"shuffle"}},
	{VerbLoop, []string{"loop"}},
	{VerbQueue, []string{"queue"}},
	{VerbHelp, []string{"help", "h"}},
	{VerbQuit, []string{"quit", "q"}},
}

var verbs = func() map[string]Verb {
	m := make(map[string]Verb)
	for _, e := range verbTable {
		for _, n := range e.names {
			m[n] = e.verb
		}
	}
	return m
}()

// Names returns the long name of every verb, for completion and help.
func Names() []string {
	out := make([]string, len(verbTable))
	for i, e := range verbTable {
		out[i] = e.names[0]
	}
	return out
}

// Command is a parsed command line.
type Command struct {
	Verb Verb
	Name string   // verb as typed
	Bang bool     // verb ended with '!'
	Args []string // whitespace-split arguments
	Rest string   // argument text as typed, trimmed

	Line     int // VerbGotoLine: 1-based line
	From, To int // VerbDeleteLines: 1-based inclusive range
	Offset   int // VerbRelativeLine: signed line offset
}

// Arg returns argument i, or "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

var (
	deleteOne   = regexp.MustCompile(`^(\d+)\s*d$`)
	deleteRange = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)\s*d$`)
	relative    = regexp.MustCompile(`^([+-])(\d+)$`)
	lineNumber  = regexp.MustCompile(`^\d+$`)
)

// Parse reads one command line, without its leading ':'. Numeric forms
// (":5d", ":10,20d", ":+3", ":42") are recognised before the verb table.
// An empty line parses to VerbNone.
func Parse(input string) (Command, error) {
	line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if line == "" {
		return Command{}, nil
	}

	if m := deleteRange.FindStringSubmatch(line); m != nil {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		return Command{Verb: VerbDeleteLines, Name: line, From: from, To: to}, nil
	}
	if m := deleteOne.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Command{Verb: VerbDeleteLines, Name: line, From: n, To: n}, nil
	}
	if m := relative.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		if m[1] == "-" {
			n = -n
		}
		return Command{Verb: VerbRelativeLine, Name: line, Offset: n}, nil
	}
	if lineNumber.MatchString(line) {
		n, _ := strconv.Atoi(line)
		return Command{Verb: VerbGotoLine, Name: line, Line: n}, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	bang := false
	if trimmed, ok := strings.CutSuffix(name, "!"); ok && trimmed != "" {
		name, bang = trimmed, true
	}

	verb, ok := verbs[strings.ToLower(name)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	cmd := Command{Verb: verb, Name: name, Bang: bang, Rest: rest}
	if rest != "" {
		cmd.Args = strings.Fields(rest)
	}
	return cmd, nil
}
