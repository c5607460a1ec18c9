// Package num provides an optional float value used for block attributes
// that may be absent from the model. Absence is tracked explicitly rather
// than with a sentinel constant so that legitimate extreme values cannot
// collide with "undefined".
package num

// Opt is a float64 that may be undefined.
type Opt struct {
	v  float64
	ok bool
}

// Of returns a defined value.
func Of(v float64) Opt { return Opt{v: v, ok: true} }

// Undef returns the undefined value.
func Undef() Opt { return Opt{} }

// Defined reports whether the value is present.
func (o Opt) Defined() bool { return o.ok }

// Get returns the value and whether it is defined.
func (o Opt) Get() (float64, bool) { return o.v, o.ok }

// Or returns the value, or def when undefined.
func (o Opt) Or(def float64) float64 {
	if o.ok {
		return o.v
	}
	return def
}

// Must returns the value; zero when undefined.
func (o Opt) Must() float64 { return o.v }
