package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IntField is an integer input that may be missing or malformed.
type IntField struct {
	Value int64
	Valid bool
}

// Int returns a present, valid field.
func Int(v int64) IntField {
	return IntField{Value: v, Valid: true}
}

// ParseIntJSON accepts a JSON integer, an integral JSON float or a string of
// digits. Anything else, including a missing field or null, is invalid.
func ParseIntJSON(raw json.RawMessage) IntField {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return IntField{}
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return IntField{}
		}
		return ParseIntString(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return IntField{}
	}
	if v, err := n.Int64(); err == nil {
		return Int(v)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return IntField{}
	}
	return Int(int64(f))
}

// ParseIntString parses a form value such as "3" or " 3 ".
func ParseIntString(s string) IntField {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return IntField{}
	}
	return Int(v)
}

// RatingInput is a rating submission before validation.
type RatingInput struct {
	RaterID  IntField
	TargetID IntField
	Score    IntField
	Comment  string
}
