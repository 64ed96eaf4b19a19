package profile

// profileCategory maps each known profile name to its broad category group.
// Profiles absent from this map have no category and trigger no narrowing.
var profileCategory = map[string]string{
	"Ball-Playing Defender":             "Defender",
	"Stopper":                           "Defender",
	"Overlapping Full-Back":             "Defender",
	"Inverted Full-Back":                "Defender",
	"Anchor Man / Defensive Midfielder": "Midfielder",
	"Regista / Deep-Lying Playmaker":    "Midfielder",
	"Box-to-Box Midfielder":             "Midfielder",
	"Mezzala / Attacking 8":             "Midfielder",
	"Advanced Playmaker / Number 10":    "Midfielder",
	"Winger":                            "Forward",
	"Inside Forward":                    "Forward",
	"Pressing Forward":                  "Forward",
	"Target Man":                        "Forward",
	"Poacher / Goal Hanger":             "Forward",
	"False Nine":                        "Forward",
	"Sweeper Keeper":                    "Goalkeeper",
	"Shot Stopper":                      "Goalkeeper",
}

// categoryPositions maps a broad category group to the primary_category
// values it accepts when narrowing a dataset.
var categoryPositions = map[string][]string{
	"Forward":    {"Striker", "Attacking Midfielder", "Winger", "Pressing Forward"},
	"Midfielder": {"Attacking Midfielder", "Defensive Midfielder", "Center Midfielder"},
	"Defender":   {"Center Back", "Full Back"},
	"Goalkeeper": {"Goalkeeper"},
}

func categoryFor(profileName string) string {
	return profileCategory[profileName]
}

// PositionsFor returns the acceptable primary_category values for a profile.
// ok is false when the profile has no category mapping, in which case callers
// skip narrowing and use the full dataset.
func PositionsFor(profileName string) ([]string, bool) {
	cat, ok := profileCategory[profileName]
	if !ok {
		return nil, false
	}
	positions, ok := categoryPositions[cat]
	if !ok || len(positions) == 0 {
		return nil, false
	}
	return append([]string(nil), positions...), true
}
