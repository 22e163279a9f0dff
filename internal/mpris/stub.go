//go:build !linux

package mpris

// Adapter does nothing outside Linux; commands never arrive.
type Adapter struct{}

func New(_ *Bridge) (*Adapter, error) { return &Adapter{}, nil }

func (a *Adapter) Close() error { return nil }
