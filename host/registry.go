package host

import (
	"context"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-math/errors"
)

// Host is the interface for host modules.
type Host interface {
	// Namespace returns the wasm import module name (e.g., "my_package:math").
	Namespace() string
}

// FuncProvider is a Host that lists its functions by export name.
type FuncProvider interface {
	Host
	Functions() map[string]HostFunc
}

// HostFunc is a host function with its core wasm signature.
type HostFunc struct {
	Fn         api.GoModuleFunc
	Params     []api.ValueType
	Results    []api.ValueType
	ParamNames []string
}

type Registry struct {
	funcs map[string]map[string]*HostFunc
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]map[string]*HostFunc),
	}
}

func (r *Registry) RegisterHost(h FuncProvider) error {
	ns := h.Namespace()
	if ns == "" {
		return errors.InvalidInput(errors.PhaseHost, "namespace cannot be empty")
	}

	for name, fn := range h.Functions() {
		if err := r.RegisterFunc(ns, name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) RegisterFunc(namespace, name string, fn HostFunc) error {
	if namespace == "" {
		return errors.InvalidInput(errors.PhaseHost, "namespace cannot be empty")
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseHost, "function name cannot be empty")
	}
	if fn.Fn == nil {
		return errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Func(name).
			Detail("handler cannot be nil").
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs[namespace] == nil {
		r.funcs[namespace] = make(map[string]*HostFunc)
	}
	if _, exists := r.funcs[namespace][name]; exists {
		return errors.New(errors.PhaseHost, errors.KindRegistration).
			Func(name).
			Detail("%s#%s already registered", namespace, name).
			Build()
	}

	f := fn
	r.funcs[namespace][name] = &f
	return nil
}

// Bind instantiates one wazero host module per namespace.
// Modules instantiated before a failure are closed.
func (r *Registry) Bind(ctx context.Context, rt wazero.Runtime) ([]api.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	namespaces := make([]string, 0, len(r.funcs))
	for ns := range r.funcs {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	mods := make([]api.Module, 0, len(namespaces))
	for _, ns := range namespaces {
		builder := rt.NewHostModuleBuilder(ns)

		names := make([]string, 0, len(r.funcs[ns]))
		for name := range r.funcs[ns] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			hf := r.funcs[ns][name]
			fb := builder.NewFunctionBuilder().WithGoModuleFunction(hf.Fn, hf.Params, hf.Results)
			if len(hf.ParamNames) == len(hf.Params) {
				fb = fb.WithParameterNames(hf.ParamNames...)
			}
			builder = fb.Export(name)
		}

		mod, err := builder.Instantiate(ctx)
		if err != nil {
			for _, m := range mods {
				if closeErr := m.Close(ctx); closeErr != nil {
					Logger().Warn("failed to close host module",
						zap.String("module", m.Name()),
						zap.Error(closeErr))
				}
			}
			return nil, errors.Registration(errors.PhaseHost, ns, "*", err)
		}
		Logger().Debug("bound host module",
			zap.String("module", ns),
			zap.Strings("functions", names))
		mods = append(mods, mod)
	}
	return mods, nil
}
