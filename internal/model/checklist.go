package model

// Inspection statuses.
const (
	StatusInProgress = "in-progress"
	StatusPass       = "pass"
	StatusFail       = "fail"
)

// Checklist item requirement levels, configured per item in Settings.
const (
	LevelRequired = "required"
	LevelOptional = "optional"
	LevelHidden   = "hidden"
)

// ChecklistItems is the fixed checklist vocabulary shared by server and client.
// Photo uploads are rejected for any item name outside this list.
var ChecklistItems = []string{
	"VIN",
	"Under Vehicle",
	"Vehicle on Hoist",
	"Engine Bay",
	"Compliance Plate",
	"Front of Vehicle",
	"Rear of Vehicle",
	"Head Light Aimer",
	"Dashboard Warning Lights",
	"Odometer Before Road Test",
	"Odometer After Road Test",
	"Brake Test Print",
	"Engine Number",
	"Modification Plate",
	"LPG Tank Plate",
	"Tint Read Out",
	"Noteworthy",
	"Fault",
	"Other",
}

// IsChecklistItem reports whether name belongs to the fixed vocabulary.
func IsChecklistItem(name string) bool {
	for _, item := range ChecklistItems {
		if item == name {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known inspection statuses.
func ValidStatus(s string) bool {
	return s == StatusInProgress || s == StatusPass || s == StatusFail
}
