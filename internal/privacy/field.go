// Package privacy implements the per-identity step-up authentication gate
// and the deterministic masking of protected record fields.
package privacy

import "sync"

// Field is a protectable attribute. Keeping this a closed enum rules out the
// typo-class bugs a string-keyed policy permits.
type Field string

const (
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldAddress     Field = "address"
	FieldDateOfBirth Field = "date_of_birth"
	FieldCredentials Field = "credentials"
)

var AllFields = []Field{FieldEmail, FieldPhone, FieldAddress, FieldDateOfBirth, FieldCredentials}

// ParseField resolves a wire-level field name to the closed enum.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	for _, known := range AllFields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Policy flags each protectable field as protected or not. The policy is
// global, not per record.
type Policy struct {
	mu        sync.RWMutex
	protected map[Field]bool
}

// NewPolicy protects every field by default.
func NewPolicy() *Policy {
	protected := make(map[Field]bool, len(AllFields))
	for _, f := range AllFields {
		protected[f] = true
	}
	return &Policy{protected: protected}
}

func (p *Policy) Protected(f Field) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.protected[f]
}

func (p *Policy) SetProtected(f Field, protected bool) {
	p.mu.Lock()
	p.protected[f] = protected
	p.mu.Unlock()
}
