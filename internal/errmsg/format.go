// Package errmsg formats collaborator failures for the status line.
package errmsg

import "fmt"

// Op names an operation that can fail.
type Op string

const (
	// Folder and library
	OpFolderOpen    Op = "open folder"
	OpFolderBrowse  Op = "browse folder"
	OpFolderReload  Op = "reload folder"
	OpLibraryLoad   Op = "load library"
	OpLibraryAdd    Op = "add library folder"
	OpLibraryRemove Op = "remove library folder"
	OpLibraryList   Op = "list library folders"
	OpReveal        Op = "reveal file"

	// Saved playlists
	OpPlaylistSave   Op = "save playlist"
	OpPlaylistLoad   Op = "load playlist"
	OpPlaylistList   Op = "list playlists"
	OpPlaylistRename Op = "rename playlist"
	OpPlaylistDelete Op = "delete playlist"
	OpPlaylistAdd    Op = "add to playlist"

	// Playback
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpDeviceList    Op = "list audio devices"
	OpDeviceSet     Op = "switch audio device"

	// Settings
	OpDefaultSet   Op = "set default folder"
	OpDefaultClear Op = "clear default folder"
	OpSettingsSave Op = "save settings"
	OpKeymapReload Op = "reload key bindings"
	OpInitialize   Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of the operation.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
