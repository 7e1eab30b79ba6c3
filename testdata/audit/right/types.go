package right

type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

type Account struct {
	ID   int64
	Tags []string
}

type Balance int32

type Ledger map[int]float64

type OnlyRight struct{}
