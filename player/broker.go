package player

type (
	// Broker carries messages from the player goroutine to the main goroutine.
	// All sends from the player are non-blocking: if the main goroutine does
	// not keep up and the channel fills, messages are dropped rather than
	// stalling playback.
	Broker struct {
		ToMain chan MsgToMain
	}

	// MsgToMain is a message sent from the player. The position is sent on
	// every tick, so it is not boxed; all the infrequent messages (PlayState,
	// PauseState, SequenceLoaded, SequenceEdited and Alert) travel in Data.
	MsgToMain struct {
		HasPosition bool
		Position    float64

		Data any
	}

	PlayState struct {
		Playing bool
	}

	PauseState struct {
		Paused bool
	}

	// SequenceLoaded is sent after Player.Load installed a new sequence.
	SequenceLoaded struct {
		Duration float64
		Tracks   int
	}

	// SequenceEdited is sent after every Player.Edit.
	SequenceEdited struct{}
)

func NewBroker() *Broker {
	return &Broker{
		ToMain: make(chan MsgToMain, 1024),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
