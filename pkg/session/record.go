package session

import (
	"encoding/json"
	"fmt"
	"maps"
)

// recordVersion tags every record written by the engine.
const recordVersion = 2

// Record is the persisted form of a session.
//
// Values in Data and Flash survive a JSON round-trip, so numbers come back
// as float64 and nested objects as map[string]any.
type Record struct {
	Version    int            `json:"v"`
	Data       map[string]any `json:"data"`
	Flash      map[string]any `json:"flash"`
	UserID     string         `json:"userId,omitempty"`
	UserAgent  string         `json:"ua,omitempty"`
	IP         string         `json:"ip,omitempty"`
	LastSeenAt int64          `json:"lastSeenAt"`
}

// NewRecord returns an empty record with initialized maps.
func NewRecord() *Record {
	return &Record{
		Version: recordVersion,
		Data:    make(map[string]any),
		Flash:   make(map[string]any),
	}
}

// IsAuthenticated returns true if the record belongs to a logged in user
func (r *Record) IsAuthenticated() bool {
	return r != nil && r.UserID != ""
}

// EncodeRecord serializes a record in the current tagged format.
func EncodeRecord(r *Record) ([]byte, error) {
	if r == nil {
		r = NewRecord()
	}
	out := *r
	out.Version = recordVersion
	if out.Data == nil {
		out.Data = make(map[string]any)
	}
	if out.Flash == nil {
		out.Flash = make(map[string]any)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	return b, nil
}

// DecodeRecord parses a stored value.
//
// Tagged values must carry the current version. Untagged values that have a
// flash field were written before the tag existed and are read as-is; any
// other untagged object is a legacy flat payload and becomes Data with an
// empty flash set. Everything else yields ErrMalformedRecord.
func DecodeRecord(raw []byte) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object: %v", ErrMalformedRecord, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got null", ErrMalformedRecord)
	}

	if tag, ok := fields["v"]; ok {
		var version int
		if err := json.Unmarshal(tag, &version); err != nil {
			return nil, fmt.Errorf("%w: invalid version tag %s", ErrMalformedRecord, tag)
		}
		if version != recordVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedRecord, version)
		}
		return decodeTagged(raw)
	}

	if _, ok := fields["flash"]; ok {
		return decodeTagged(raw)
	}

	return migrateFlat(raw)
}

func decodeTagged(raw []byte) (*Record, error) {
	rec := NewRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	rec.Version = recordVersion
	if rec.Data == nil {
		rec.Data = make(map[string]any)
	}
	if rec.Flash == nil {
		rec.Flash = make(map[string]any)
	}
	return rec, nil
}

// migrateFlat converts a legacy record where the whole object was the payload.
func migrateFlat(raw []byte) (*Record, error) {
	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	rec := NewRecord()
	rec.Data = data
	return rec, nil
}

// mergeFlash returns the flash set for the next request: previous entries
// that were not read, overlaid with entries staged during this request.
func mergeFlash(previous map[string]any, consumed map[string]struct{}, staged map[string]any) map[string]any {
	next := make(map[string]any, len(previous)+len(staged))
	for k, v := range previous {
		if _, ok := consumed[k]; ok {
			continue
		}
		next[k] = v
	}
	maps.Copy(next, staged)
	return next
}
