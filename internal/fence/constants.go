package fence

const (
	// DefaultCancelCheckInterval is the number of loop iterations between
	// context cancellation checks (and progress reports) in the iterative
	// calculator. Checking on every iteration measurably slows the loop for
	// large n; 4096 keeps cancellation latency well under a millisecond on
	// modern hardware.
	DefaultCancelCheckInterval = 4096
)
