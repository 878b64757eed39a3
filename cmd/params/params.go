package params

const (
	Version = "0.1.0"
)
