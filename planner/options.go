package planner

// PredictorMeta is the planning-relevant metadata spec.md's
// predictor_metadata map carries per predictor name.
type PredictorMeta struct {
	Timeseries    bool
	OrderByColumn string
	GroupByColumn string
	Window        int
}

type options struct {
	predictorNamespace string
	defaultNamespace   string
	predictorMetadata  map[string]PredictorMeta
}

func getDefaultOptions() options {
	return options{
		predictorNamespace: "mindsdb",
		predictorMetadata:  map[string]PredictorMeta{},
	}
}

// Option configures a PlanQuery call. Generalized from the teacher's
// functional-options pattern (options.go's Option func(*options) error) from
// parser dialect knobs to planner knobs.
type Option func(*options) error

func getOpts(opt ...Option) (options, error) {
	opts := getDefaultOptions()
	for _, o := range opt {
		if err := o(&opts); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// WithPredictorNamespace sets the reserved namespace name matched
// case-insensitively against table identifiers (default "mindsdb").
func WithPredictorNamespace(ns string) Option {
	return func(o *options) error {
		o.predictorNamespace = ns
		return nil
	}
}

// WithDefaultNamespace attributes bare (single-segment) table identifiers
// to ns instead of requiring them to be unattributable.
func WithDefaultNamespace(ns string) Option {
	return func(o *options) error {
		o.defaultNamespace = ns
		return nil
	}
}

// WithPredictorMetadata supplies per-predictor metadata. A predictor join
// whose predictor has Timeseries metadata is planned by the time-series
// join rule (§4.6); without it the ordinary predictor join rule (§4.5)
// applies, which needs no metadata.
func WithPredictorMetadata(meta map[string]PredictorMeta) Option {
	return func(o *options) error {
		o.predictorMetadata = meta
		return nil
	}
}
