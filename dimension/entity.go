package dimension

import (
	"encoding/json"
)

// Entity is one extracted value: the source substring, its byte offsets and
// the resolved value. Entities own no reference into parse state.
type Entity struct {
	Body   string
	Start  int
	End    int
	Latent *bool
	Value  Value
}

// Kind returns the dimension kind of the resolved value
func (e Entity) Kind() Kind {
	return e.Value.Kind()
}

// Overlaps reports whether two entities claim a common byte
func (e Entity) Overlaps(o Entity) bool {
	return e.Start < o.End && o.Start < e.End
}

// MarshalJSON encodes the entity with its dimension name alongside the value
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Body   string `json:"body"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
		Dim    Kind   `json:"dim"`
		Latent *bool  `json:"latent,omitempty"`
		Value  Value  `json:"value"`
	}{e.Body, e.Start, e.End, e.Value.Kind(), e.Latent, e.Value})
}
