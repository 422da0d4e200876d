package gojarx

import "time"

var defaultOptions = options{
	compiler: CompileRegexp2,
	legacy:   true,
}

type Option interface {
	apply(*options)
}

type options struct {
	compiler     Compiler
	legacy       bool
	matchTimeout time.Duration
	genericOnly  bool
}

type funcOption struct {
	f func(*options)
}

func (fdo *funcOption) apply(do *options) {
	fdo.f(do)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithCompiler replaces the engine patterns are compiled into.
func WithCompiler(c Compiler) Option {
	return newFuncOption(func(o *options) {
		o.compiler = c
	})
}

// WithMatchTimeout bounds a single engine search when the default engine is
// used. Zero means no limit.
func WithMatchTimeout(d time.Duration) Option {
	return newFuncOption(func(o *options) {
		o.matchTimeout = d
	})
}

// WithLegacyFeatures controls whether patterns created by Realm.Compile may
// record their matches in the realm's Statics.
func WithLegacyFeatures(enabled bool) Option {
	return newFuncOption(func(o *options) {
		o.legacy = enabled
	})
}

// WithGenericPathOnly disables the built-in fast paths so every operation
// goes through property lookups and dynamic exec dispatch.
func WithGenericPathOnly() Option {
	return newFuncOption(func(o *options) {
		o.genericOnly = true
	})
}
