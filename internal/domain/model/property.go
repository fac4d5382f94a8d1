package model

// Property is a row of the read-only property catalog mirror, keyed by the
// property management system's code.
type Property struct {
	Code   string
	Street string
	City   string
	State  string
	Zip    string
}
