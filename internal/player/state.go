package player

// transport tracks whether a stream is attached and whether it is advancing.
// End of stream leaves it running or held; IsFinished reports that case.
type transport uint8

const (
	idle transport = iota
	running
	held
)

func (t transport) loaded() bool {
	return t != idle
}
