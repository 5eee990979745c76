package models

// GroupConfig is a top-level map filter group.
type GroupConfig struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Center Coordinates `json:"center"`
}

// Groups is the fixed set of visible groups. The first entry is the default
// filter on a fresh session.
var Groups = []GroupConfig{
	{Key: "FULLDFIESTA", Label: "FIESTA", Center: Coordinates{Lat: 40.4168, Lng: -3.7038}}, // Madrid
	{Key: "FULLDMOTOR", Label: "MOTOR", Center: Coordinates{Lat: 39.4699, Lng: -0.3763}},   // Valencia
}

// VisibleGroupKeys returns the group keys events are filtered to.
func VisibleGroupKeys() []string {
	keys := make([]string, 0, len(Groups))
	for _, g := range Groups {
		keys = append(keys, g.Key)
	}
	return keys
}

// IsVisibleGroupKey reports whether key belongs to a configured group.
func IsVisibleGroupKey(key string) bool {
	for _, g := range Groups {
		if g.Key == key {
			return true
		}
	}
	return false
}
