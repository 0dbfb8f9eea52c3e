package position

// Element type ids used by FPL.
const (
	Goalkeeper = 1
	Defender   = 2
	Midfielder = 3
	Forward    = 4
)

// Type is an FPL element type (playing position).
type Type struct {
	ID                int
	SingularName      string
	SingularNameShort string
	PluralName        string
}
