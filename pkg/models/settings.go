package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SettingKind identifies the shape of a profile setting value.
type SettingKind int

const (
	SettingString SettingKind = iota
	SettingNumber
	SettingBool
	SettingStringList
)

// SettingValue is a tagged union for profile settings and constraints.
// Only four shapes are ever stored: string, number, boolean, list of strings.
type SettingValue struct {
	kind SettingKind
	str  string
	num  float64
	b    bool
	list []string
}

// StringSetting creates a string-valued setting.
func StringSetting(s string) SettingValue {
	return SettingValue{kind: SettingString, str: s}
}

// NumberSetting creates a numeric setting.
func NumberSetting(n float64) SettingValue {
	return SettingValue{kind: SettingNumber, num: n}
}

// BoolSetting creates a boolean setting.
func BoolSetting(b bool) SettingValue {
	return SettingValue{kind: SettingBool, b: b}
}

// ListSetting creates a string-list setting.
func ListSetting(items ...string) SettingValue {
	return SettingValue{kind: SettingStringList, list: items}
}

// Kind returns the shape of the stored value.
func (v SettingValue) Kind() SettingKind { return v.kind }

// String renders the value the way it would appear in an environment
// variable: numbers without a trailing ".0", lists comma-joined.
func (v SettingValue) String() string {
	switch v.kind {
	case SettingNumber:
		if v.num == float64(int64(v.num)) {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case SettingBool:
		return strconv.FormatBool(v.b)
	case SettingStringList:
		return strings.Join(v.list, ",")
	default:
		return v.str
	}
}

// Number returns the numeric value, or 0 for non-numeric kinds.
func (v SettingValue) Number() float64 {
	if v.kind == SettingNumber {
		return v.num
	}
	return 0
}

// Bool returns the boolean value, or false for non-boolean kinds.
func (v SettingValue) Bool() bool {
	return v.kind == SettingBool && v.b
}

// List returns the string-list value, or nil for other kinds.
func (v SettingValue) List() []string {
	if v.kind == SettingStringList {
		return v.list
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v SettingValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SettingNumber:
		return json.Marshal(v.num)
	case SettingBool:
		return json.Marshal(v.b)
	case SettingStringList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringSetting(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolSetting(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberSetting(n)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListSetting(list...)
		return nil
	}
	return fmt.Errorf("unsupported setting value: %s", string(data))
}
