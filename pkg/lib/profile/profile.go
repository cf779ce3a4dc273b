// Package profile serves the runtime profiling endpoints of a check run.
package profile

import (
	"net/http"
	"net/http/pprof"
)

type profileConfig struct {
	cmdline bool
	profile bool
	symbol  bool
	trace   bool
}

// Option disables one of the optional endpoints.
type Option func(p *profileConfig)

func WithoutCmdline() Option {
	return func(p *profileConfig) { p.cmdline = false }
}

func WithoutCPUProfile() Option {
	return func(p *profileConfig) { p.profile = false }
}

func WithoutSymbol() Option {
	return func(p *profileConfig) { p.symbol = false }
}

func WithoutTrace() Option {
	return func(p *profileConfig) { p.trace = false }
}

// RegisterHandlers registers the pprof index, which also serves the
// named runtime profiles such as heap and goroutine, and every optional
// endpoint not disabled by options.
func RegisterHandlers(mux *http.ServeMux, options ...Option) {
	config := &profileConfig{cmdline: true, profile: true, symbol: true, trace: true}
	for _, o := range options {
		o(config)
	}

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	if config.cmdline {
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	}
	if config.profile {
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	}
	if config.symbol {
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	}
	if config.trace {
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
}
