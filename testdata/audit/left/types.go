package left

type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

type Account struct {
	ID   int64
	Tags []string
}

type Balance float64

type Ledger map[string]float64

type OnlyLeft struct{}
