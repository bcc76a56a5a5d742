package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Capability is a named admin-panel permission.
type Capability string

const (
	CapAddProduct    Capability = "addProduct"
	CapUpdateProduct Capability = "updateProduct"
	CapDeleteProduct Capability = "deleteProduct"
	CapApplyDiscount Capability = "applyDiscount"
	CapCreateCoupon  Capability = "createCoupon"
)

// Capabilities lists every known capability in display order.
var Capabilities = []Capability{
	CapAddProduct,
	CapUpdateProduct,
	CapDeleteProduct,
	CapApplyDiscount,
	CapCreateCoupon,
}

// IsKnown reports whether c is one of Capabilities.
func (c Capability) IsKnown() bool {
	for _, known := range Capabilities {
		if c == known {
			return true
		}
	}
	return false
}

// Permissions is the set of capabilities granted to an administrator. A
// capability absent from the map is not granted.
type Permissions map[Capability]bool

// Has reports whether c is granted.
func (p Permissions) Has(c Capability) bool {
	return p[c]
}

// Granted returns the granted capabilities sorted by name.
func (p Permissions) Granted() []Capability {
	out := make([]Capability, 0, len(p))
	for c, ok := range p {
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate rejects unknown capability names.
func (p Permissions) Validate() error {
	for c := range p {
		if !c.IsKnown() {
			return fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, c)
		}
	}
	return nil
}

// EncodePermissions serialises p as a JSON object holding only granted
// capabilities. The result is canonical: equal sets encode to equal strings.
func EncodePermissions(p Permissions) (string, error) {
	granted := make(map[Capability]bool, len(p))
	for _, c := range p.Granted() {
		granted[c] = true
	}
	// encoding/json sorts map keys.
	b, err := json.Marshal(granted)
	if err != nil {
		return "", fmt.Errorf("encode permissions: %w", err)
	}
	return string(b), nil
}

// DecodePermissions parses a stored permission set. Besides the canonical
// object form it accepts a JSON array of capability names, JSON null and the
// empty string.
func DecodePermissions(s string) (Permissions, error) {
	raw := bytes.TrimSpace([]byte(s))
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Permissions{}, nil
	}

	switch raw[0] {
	case '{':
		var m map[Capability]bool
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
		out := make(Permissions, len(m))
		for c, ok := range m {
			if ok {
				out[c] = true
			}
		}
		return out, nil
	case '[':
		var names []Capability
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
		out := make(Permissions, len(names))
		for _, c := range names {
			out[c] = true
		}
		return out, nil
	}
	return nil, fmt.Errorf("decode permissions: unexpected value %q", s)
}

// Value implements driver.Valuer.
func (p Permissions) Value() (driver.Value, error) {
	return EncodePermissions(p)
}

// Scan implements sql.Scanner.
func (p *Permissions) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan permissions: unsupported type %T", value)
	}

	decoded, err := DecodePermissions(s)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
