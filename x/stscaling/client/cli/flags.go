package cli

// Flag constants for stscaling CLI commands
const (
	// Sender flag, the address the call is made as
	FlagFrom = "from"

	// Instantiate flags
	FlagAdmin  = "admin"
	FlagOracle = "oracle"
)
