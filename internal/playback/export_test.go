package playback

// ShuffleHistory returns the shuffle picks and the cursor into them.
func (s *Session) ShuffleHistory() ([]int, int) {
	return append([]int(nil), s.shuffle.history...), s.shuffle.cursor
}
