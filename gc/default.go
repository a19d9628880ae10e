package gc

// def is the process-wide default Instance, reachable through the
// package-level functions below. It exists for callers that just want
// one collector and would rather not thread a *Instance through every
// call; *Instance itself stays an ordinary exported type so a program
// (or a test) that wants more than one collector isn't forced through
// this global.
var def *Instance

// Init constructs the default Instance and returns it.
func Init(opts ...Option) *Instance {
	def = New(opts...)
	return def
}

// Finish tears down the default Instance, running every finalizer and
// then freeing every block. It is a no-op if Init was never called.
func Finish() {
	if def == nil {
		return
	}
	def.Close()
	def = nil
}

// Default returns the process-wide default Instance, or nil if Init has
// not been called.
func Default() *Instance {
	return def
}

// NumBlocks returns the default instance's current registry size.
func NumBlocks() int { return def.NumBlocks() }

// Effort returns the default instance's current scheduling effort.
func Effort() float64 { return def.Effort() }

// SetEffort tunes the default instance's scheduling effort.
func SetEffort(effort float64) { def.SetEffort(effort) }

// Step advances the default instance's collector by one unit of work.
func Step() { def.Step() }
