package repository

import (
	"encoding/json"
	"reflect"
	"time"
)

// Metadata holds versioning info for optimistic locking.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// Journal is the persisted event log.
type Journal struct {
	Metadata Metadata `json:"metadata"`
	Events   []Entry  `json:"events" validate:"dive"`
}

// Entry is one recorded monitor event.
type Entry struct {
	ID           string    `json:"id" validate:"required,uuid"`
	Kind         string    `json:"kind" validate:"required,oneof=slide_changed selection_changed presentation_saved"`
	Presentation string    `json:"presentation"`
	Slide        int       `json:"slide,omitempty" validate:"min=0"`
	Shape        string    `json:"shape,omitempty"`
	Path         string    `json:"path,omitempty"`
	At           time.Time `json:"at"`
}

// ApplyDefaults sets fallback values after decode.
func (j *Journal) ApplyDefaults() {
	if j.Events == nil {
		j.Events = []Entry{}
	}
}

// AreJournalsEqual compares two journals ignoring Metadata.
func AreJournalsEqual(a, b *Journal) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a.Events)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b.Events)
	if err != nil {
		return false
	}

	var aList, bList []map[string]interface{}
	if err := json.Unmarshal(aBytes, &aList); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bList); err != nil {
		return false
	}
	if len(aList) == 0 && len(bList) == 0 {
		return true
	}

	return reflect.DeepEqual(aList, bList)
}
