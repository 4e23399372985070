package flash

//go:generate go run github.com/dmarkham/enumer -type State -trimprefix State -transform lower -json -output state.gen.go

// State indicates the outcome a flash message reports.
type State int

const (
	StateSuccess State = iota
	StateError
)
