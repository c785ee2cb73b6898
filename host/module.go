package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-math/errors"
)

type options struct {
	log        *zap.Logger
	moduleName string
}

// Option configures Instantiate.
type Option func(*options)

// WithModuleName sets the import module name. Defaults to DefaultModuleName.
func WithModuleName(name string) Option {
	return func(o *options) {
		o.moduleName = name
	}
}

// WithLogger sets the logger used by the host functions.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// NewRuntime creates a wazero runtime suitable for the math host.
// Multi-value results, which add and div use, are part of the default
// core feature set.
func NewRuntime(ctx context.Context) wazero.Runtime {
	return wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().
		WithCoreFeatures(api.CoreFeaturesV2))
}

// Instantiate registers the math host in rt and returns the host module.
func Instantiate(ctx context.Context, rt wazero.Runtime, opts ...Option) (api.Module, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	reg := NewRegistry()
	m := NewMath(o.moduleName, o.log)
	if err := reg.RegisterHost(m); err != nil {
		return nil, err
	}

	mods, err := reg.Bind(ctx, rt)
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	if len(mods) != 1 {
		return nil, errors.NotFound(errors.PhaseLoad, "host module", m.Namespace())
	}
	return mods[0], nil
}
