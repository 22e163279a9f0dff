package settings

// Resolve returns the canonical option name for a full name or alias.
func Resolve(name string) (string, bool) {
	opt, ok := lookup(name)
	if !ok {
		return "", false
	}
	return opt.name, true
}
