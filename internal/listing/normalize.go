package listing

import "encoding/json"

// UnknownOwner is substituted whenever the owner descriptor is missing
// or unreadable.
const UnknownOwner = "Unknown"

type ownerDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParseOwner decodes the JSON owner descriptor embedded in a stored
// document. Malformed or missing descriptors are not an error: the
// listing is still usable, so the fallback owner is returned instead.
func ParseOwner(raw string) Owner {
	if raw == "" {
		return Owner{DisplayName: UnknownOwner}
	}
	var desc ownerDescriptor
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return Owner{DisplayName: UnknownOwner}
	}
	name := desc.Name
	if name == "" {
		name = UnknownOwner
	}
	return Owner{ID: desc.ID, DisplayName: name}
}
