// Package notify sends desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"strings"
	"time"
)

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

const trackTimeout = 4 * time.Second

// Announcer turns player events into notifications, replacing its previous
// track notification instead of stacking them.
type Announcer struct {
	n      Notifier
	icon   func(trackPath string) string
	lastID uint32
}

// NewAnnouncer wraps n. icon may be nil.
func NewAnnouncer(n Notifier, icon func(trackPath string) string) *Announcer {
	return &Announcer{n: n, icon: icon}
}

// TrackChanged announces the track that started playing.
func (a *Announcer) TrackChanged(path, name, artist, album string) error {
	var body []string
	if artist != "" {
		body = append(body, artist)
	}
	if album != "" {
		body = append(body, album)
	}

	n := Notification{
		Title:      name,
		Body:       strings.Join(body, " - "),
		Timeout:    int32(trackTimeout.Milliseconds()),
		ReplacesID: a.lastID,
		Urgency:    UrgencyLow,
	}
	if a.icon != nil {
		n.Icon = a.icon(path)
	}

	id, err := a.n.Notify(n)
	if err != nil {
		return fmt.Errorf("notify track: %w", err)
	}
	a.lastID = id
	return nil
}

// SleepExpired announces that the sleep timer stopped playback.
func (a *Announcer) SleepExpired() error {
	_, err := a.n.Notify(Notification{
		Title:   "Sleep timer",
		Body:    "Playback stopped",
		Timeout: -1,
		Urgency: UrgencyNormal,
	})
	return err
}

// Dismiss closes the current track notification, if any.
func (a *Announcer) Dismiss() error {
	if a.lastID == 0 {
		return nil
	}
	id := a.lastID
	a.lastID = 0
	return a.n.Close(id)
}
