package hpq

import "code.vectorforge.dev/hpq/hazard"

type options struct {
	registry   *hazard.Registry
	hazardOpts []hazard.Option
}

func (o *options) resolve() *hazard.Registry {
	if o.registry != nil {
		return o.registry
	}
	if len(o.hazardOpts) > 0 {
		return hazard.NewRegistry(o.hazardOpts...)
	}
	return hazard.Default()
}

// Option configures a [Queue] or [BlockingQueue] at construction time.
type Option func(*options)

// WithRegistry attaches an explicit [hazard.Registry], so multiple queues
// can share one registry's free lists. The default is [hazard.Default].
func WithRegistry(reg *hazard.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithBucketSize constructs a private [hazard.Registry] tuned with the
// given [hazard.BucketSize]. Ignored if [WithRegistry] is also given,
// regardless of which option appears first or last in the call — an
// explicit Registry always takes precedence over tuning options meant to
// build one. The private Registry is not exposed, and Queue operations use
// the Registry of the [hazard.Context] passed to each call, so this tuning
// does not affect them.
func WithBucketSize(n int) Option {
	return func(o *options) { o.hazardOpts = append(o.hazardOpts, hazard.BucketSize(n)) }
}

// WithFlushSize constructs a private [hazard.Registry] tuned with the
// given [hazard.FlushSize]. Ignored if [WithRegistry] is also given,
// regardless of which option appears first or last in the call — an
// explicit Registry always takes precedence over tuning options meant to
// build one. The private Registry is not exposed, and Queue operations use
// the Registry of the [hazard.Context] passed to each call, so this tuning
// does not affect them.
func WithFlushSize(n int) Option {
	return func(o *options) { o.hazardOpts = append(o.hazardOpts, hazard.FlushSize(n)) }
}
