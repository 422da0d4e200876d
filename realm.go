package gojarx

import (
	"github.com/dop251/gojarx/unistring"
)

// Realm is the context every operation runs in: it owns the standard
// RegExp prototype, the built-in exec and the legacy statics. A Realm is not
// goroutine-safe.
type Realm struct {
	opts options

	proto       *Prototype
	builtinExec *Method
	statics     *Statics

	closed bool
}

func NewRealm(opts ...Option) *Realm {
	r := &Realm{
		opts: defaultOptions,
	}
	for _, o := range opts {
		o.apply(&r.opts)
	}
	r.init()
	return r
}

func (r *Realm) init() {
	r.statics = &Statics{}
	r.builtinExec = NewMethod("exec", r.regexpproto_exec)
	r.proto = &Prototype{
		realm: r,
		exec:  r.builtinExec,
	}
}

// Close tears the realm down. The statics are cleared; patterns of the
// realm keep working but no longer record matches.
func (r *Realm) Close() {
	r.statics.Reset()
	r.closed = true
}

func (r *Realm) Statics() *Statics {
	return r.statics
}

// Prototype is the standard RegExp prototype of the realm. Replacing its
// exec or flags accessor disables the fast paths for every instance.
func (r *Realm) Prototype() *Prototype {
	return r.proto
}

// BuiltinExec is the realm's original exec method.
func (r *Realm) BuiltinExec() *Method {
	return r.builtinExec
}

// NewPrototype creates a prototype inheriting from the standard one, the
// model of a RegExp subclass.
func (r *Realm) NewPrototype() *Prototype {
	return &Prototype{
		realm:  r,
		parent: r.proto,
	}
}

func (r *Realm) legacyFor(proto *Prototype) bool {
	return r.opts.legacy && proto == r.proto
}

func (r *Realm) compileMatcher(source string, flags Flags) (Matcher, error) {
	m, err := r.opts.compiler(source, flags&compileFlags)
	if err != nil {
		if _, ok := err.(*CompileError); !ok {
			err = &CompileError{Source: source, Flags: flags.String(), Err: err}
		}
		return nil, err
	}
	if r.opts.matchTimeout > 0 {
		if ts, ok := m.(timeoutSetter); ok {
			ts.setMatchTimeout(r.opts.matchTimeout)
		}
	}
	return m, nil
}

// Compile creates a RegExp with the standard prototype.
func (r *Realm) Compile(source, flags string) (*RegExp, error) {
	return r.CompileWithPrototype(source, flags, r.proto)
}

func (r *Realm) MustCompile(source, flags string) *RegExp {
	rx, err := r.Compile(source, flags)
	if err != nil {
		panic(err)
	}
	return rx
}

// CompileWithPrototype creates a RegExp inheriting from proto. Only
// instances of the standard prototype have legacy features enabled.
func (r *Realm) CompileWithPrototype(source, flags string, proto *Prototype) (*RegExp, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		err.(*CompileError).Source = source
		return nil, err
	}
	m, err := r.compileMatcher(source, f)
	if err != nil {
		return nil, err
	}
	if proto == nil {
		proto = r.proto
	}
	rx := &RegExp{
		realm:   r,
		proto:   proto,
		source:  source,
		flags:   f,
		matcher: m,
		legacy:  r.legacyFor(proto),
	}
	rx.init()
	return rx, nil
}

func (r *Realm) regexpproto_exec(this Object, s unistring.String) (interface{}, error) {
	rx, ok := this.(*RegExp)
	if !ok {
		return nil, newTypeError(ErrIncompatibleReceiver, "Method RegExp.prototype.exec called on incompatible receiver %T", this)
	}
	m, err := r.execRegexp(rx, s)
	if m == nil {
		return nil, err
	}
	return m, err
}
