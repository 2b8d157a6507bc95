package cubedcarac

var (
	Debug    = false // set to true for verbose debug output
	PNG      = false // set to true to render metric maps and histograms
	Parallel = false // set to true to shard the cell loop over all CPUs
)
