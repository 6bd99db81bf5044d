package model

// Marker icon classes by location type. The surface maps a class to
// whatever visual asset it carries; the sync engine only picks the class.
const (
	IconDefault    = "marker-default"
	IconEntrance   = "marker-entrance"
	IconServerRoom = "marker-server-room"
	IconRoom       = "marker-room"
	IconStorage    = "marker-storage"
	IconUtility    = "marker-utility"
)

var iconByType = map[string]string{
	"entrance":    IconEntrance,
	"server-room": IconServerRoom,
	"room":        IconRoom,
	"storage":     IconStorage,
	"utility":     IconUtility,
}

// IconClass returns the marker icon class for a location type.
// Unrecognized types get the default icon rather than failing.
func IconClass(locationType string) string {
	if class, ok := iconByType[locationType]; ok {
		return class
	}
	return IconDefault
}
