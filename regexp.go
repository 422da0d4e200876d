package gojarx

import (
	"strings"

	"github.com/dop251/gojarx/unistring"
)

// ExecFunc is an exec implementation. this is the object exec was looked up
// on. The result must be nil (no match), a *Match or a MatchLike; anything
// else is a protocol violation.
type ExecFunc func(this Object, s unistring.String) (interface{}, error)

// FlagsGetter replaces the "flags" accessor.
type FlagsGetter func(this Object) (string, error)

// Method wraps an ExecFunc. Methods are compared by identity, which is how
// the built-in exec is recognised.
type Method struct {
	call ExecFunc
	name string
}

func NewMethod(name string, fn ExecFunc) *Method {
	return &Method{call: fn, name: name}
}

func (m *Method) Name() string {
	return m.name
}

// Prototype holds the methods RegExp instances inherit.
type Prototype struct {
	realm  *Realm
	parent *Prototype

	exec  *Method
	flags FlagsGetter
}

// SetExec installs fn as this prototype's exec.
func (p *Prototype) SetExec(fn ExecFunc) *Method {
	p.exec = NewMethod("exec", fn)
	return p.exec
}

// SetExecMethod installs an existing method, which may be the built-in one.
func (p *Prototype) SetExecMethod(m *Method) {
	p.exec = m
}

func (p *Prototype) SetFlagsGetter(fn FlagsGetter) {
	p.flags = fn
}

func (p *Prototype) lookupExec() *Method {
	for o := p; o != nil; o = o.parent {
		if o.exec != nil {
			return o.exec
		}
	}
	return nil
}

func (p *Prototype) lookupFlags() FlagsGetter {
	for o := p; o != nil; o = o.parent {
		if o.flags != nil {
			return o.flags
		}
	}
	return nil
}

func (p *Prototype) Realm() *Realm {
	return p.realm
}

// Object is the property-level surface the generic algorithms work with.
// Every method may run user code and may fail.
type Object interface {
	// Exec looks up "exec" and calls it.
	Exec(s unistring.String) (interface{}, error)
	Flags() (string, error)
	Source() (string, error)
	LastIndex() (int64, error)
	SetLastIndex(v int64) error
}

// Cloner is implemented by objects that control how split and matchAll
// derive their working copy.
type Cloner interface {
	CloneWithFlags(flags string) (Object, error)
}

// RegExp is a compiled pattern plus its lastIndex cell.
//
// Not goroutine-safe, a RegExp belongs to a single Realm.
type RegExp struct {
	realm *Realm
	proto *Prototype

	source  string
	flags   Flags
	matcher Matcher

	lastIndex         int64
	lastIndexReadOnly bool

	legacy bool

	exec     *Method
	getFlags FlagsGetter

	// standard is cleared by any own override; the fast paths require it.
	standard bool
}

func (r *RegExp) init() {
	r.standard = true
	r.lastIndex = 0
}

func (r *RegExp) Realm() *Realm {
	return r.realm
}

func (r *RegExp) Prototype() *Prototype {
	return r.proto
}

func (r *RegExp) Source() (string, error) {
	return r.source, nil
}

// RawFlags returns the flags the pattern was compiled with, bypassing any
// getter override.
func (r *RegExp) RawFlags() Flags {
	return r.flags
}

func (r *RegExp) Matcher() Matcher {
	return r.matcher
}

func (r *RegExp) LegacyFeaturesEnabled() bool {
	return r.legacy
}

// Flags reads the "flags" property, honouring own and inherited getter
// overrides.
func (r *RegExp) Flags() (string, error) {
	if r.getFlags != nil {
		return r.getFlags(r)
	}
	if g := r.proto.lookupFlags(); g != nil {
		return g(r)
	}
	return r.flags.String(), nil
}

func (r *RegExp) SetFlagsGetter(fn FlagsGetter) {
	r.getFlags = fn
	r.standard = false
}

func (r *RegExp) LastIndex() (int64, error) {
	return r.lastIndex, nil
}

// SetLastIndex stores v (negative values read back as 0). It fails once
// lastIndex has been frozen.
func (r *RegExp) SetLastIndex(v int64) error {
	if r.lastIndexReadOnly {
		return newTypeError(ErrLastIndexReadOnly, "")
	}
	if v < 0 {
		v = 0
	}
	r.lastIndex = v
	return nil
}

// FreezeLastIndex makes lastIndex non-writable.
func (r *RegExp) FreezeLastIndex() {
	r.lastIndexReadOnly = true
}

// SetExec installs an own exec that shadows the prototype's.
func (r *RegExp) SetExec(fn ExecFunc) *Method {
	r.exec = NewMethod("exec", fn)
	r.standard = false
	return r.exec
}

func (r *RegExp) lookupExec() *Method {
	if r.exec != nil {
		return r.exec
	}
	return r.proto.lookupExec()
}

// Exec looks up exec and calls it.
func (r *RegExp) Exec(s unistring.String) (interface{}, error) {
	m := r.lookupExec()
	if m == nil {
		return nil, newTypeError(ErrIncompatibleReceiver, "exec is not a function")
	}
	return m.call(r, s)
}

// CloneWithFlags creates a new RegExp of the same realm and prototype with
// the same source. The engine is shared when flags differ in global or
// sticky only.
func (r *RegExp) CloneWithFlags(flags string) (Object, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Source = r.source
		}
		return nil, err
	}
	r1 := &RegExp{
		realm:  r.realm,
		proto:  r.proto,
		source: r.source,
		flags:  f,
		legacy: r.realm.legacyFor(r.proto),
	}
	if f&compileFlags == r.flags&compileFlags {
		r1.matcher = r.matcher
	} else {
		m, err := r.realm.compileMatcher(r.source, f)
		if err != nil {
			return nil, err
		}
		r1.matcher = m
	}
	r1.init()
	return r1, nil
}

// EscapedSource returns the source in a form that can be placed between
// slashes.
func (r *RegExp) EscapedSource() string {
	if r.source == "" {
		return "(?:)"
	}
	var sb strings.Builder
	inClass := false
	pos := 0
	src := r.source
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
			continue
		case '[':
			inClass = true
			continue
		case ']':
			inClass = false
			continue
		case '/':
			if inClass {
				continue
			}
			sb.WriteString(src[pos:i])
			sb.WriteString(`\/`)
		case '\n':
			sb.WriteString(src[pos:i])
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(src[pos:i])
			sb.WriteString(`\r`)
		default:
			if strings.HasPrefix(src[i:], "\u2028") {
				sb.WriteString(src[pos:i])
				sb.WriteString(`\u2028`)
				i += 2
			} else if strings.HasPrefix(src[i:], "\u2029") {
				sb.WriteString(src[pos:i])
				sb.WriteString(`\u2029`)
				i += 2
			} else {
				continue
			}
		}
		pos = i + 1
	}
	if pos == 0 {
		return src
	}
	sb.WriteString(src[pos:])
	return sb.String()
}

func (r *RegExp) String() string {
	return "/" + r.EscapedSource() + "/" + r.flags.String()
}
