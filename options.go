package liquify

// Option configures a Processor.
type Option func(*Processor)

// WithPipeline sets the host pipeline used to map stored path coordinates
// into the processing frame. The default is IdentityPipeline.
func WithPipeline(p Pipeline) Option {
	return func(pr *Processor) { pr.pipeline = p }
}

// WithRawScale sets the scale of stored coordinates relative to the
// pipeline input. The default is 1.
func WithRawScale(s float64) Option {
	return func(pr *Processor) { pr.rawScale = s }
}

// WithStage sets the processor's position in the pipeline; path
// coordinates pass through stages [0, stage].
func WithStage(stage int) Option {
	return func(pr *Processor) { pr.stage = stage }
}

// WithInterpolation selects the resampling kernel. The default is Bicubic.
func WithInterpolation(i Interpolation) Option {
	return func(pr *Processor) { pr.interp = i }
}

// WithWorkers sets the number of worker goroutines. Zero or less uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(pr *Processor) { pr.workers = n }
}

// WithAccelerator routes the resampling pass through a. Failures of a are
// returned from Process; the scalar path is not tried.
func WithAccelerator(a Accelerator) Option {
	return func(pr *Processor) { pr.accel = a }
}

// WithRegisteredAccelerator uses whatever accelerator is registered at the
// time of each Process call, if any.
func WithRegisteredAccelerator() Option {
	return func(pr *Processor) { pr.useRegistered = true }
}
