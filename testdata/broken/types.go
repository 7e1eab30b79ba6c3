package broken

type Broken struct {
	Field Missing
}
