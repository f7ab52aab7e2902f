package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is stored as a jsonb array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (StringList) GormDataType() string {
	return "jsonb"
}

// SkillSet maps a skill category (programming, design, data, business,
// marketing) to the skills listed under it. Stored as jsonb.
type SkillSet map[string][]string

func (s SkillSet) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string][]string(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode skill set: %w", err)
	}
	return string(b), nil
}

func (s *SkillSet) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func (SkillSet) GormDataType() string {
	return "jsonb"
}

func scanJSON(src interface{}, target interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
