package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mrops-br/catalog-api/internal/domain"
)

var jsonNull = []byte("null")

// OptionalString tells an absent field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		o.Value = ""
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Present reports a supplied, non-null, non-empty value.
func (o OptionalString) Present() bool {
	return o.Set && !o.Null && o.Value != ""
}

// Number accepts a JSON number or a numeric string. Null and "" count as not supplied.
type Number struct {
	Set   bool
	Value float64
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	if bytes.Equal(data, jsonNull) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.ErrInvalidPrice
		}
		n.Set, n.Value = true, v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return domain.ErrInvalidPrice
	}
	n.Set, n.Value = true, v
	return nil
}

// Float returns the value, or 0 when it was not supplied
func (n Number) Float() float64 {
	if !n.Set {
		return 0
	}
	return n.Value
}

// Int returns the value as an integer; ok is false for fractional values.
func (n Number) Int() (int, bool) {
	if !n.Set || n.Value != math.Trunc(n.Value) {
		return 0, false
	}
	return int(n.Value), true
}
