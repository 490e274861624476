package domain

// AppType distinguishes user-installed apps from system apps
type AppType string

const (
	AppTypeUser   AppType = "user"
	AppTypeSystem AppType = "system"
)

// App represents an installed application on a simulator
type App struct {
	BundleID    string  `json:"bundle_id"`
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	BuildNumber string  `json:"build_number,omitempty"`
	Path        string  `json:"path,omitempty"`
	DataPath    string  `json:"data_path,omitempty"`
	Type        AppType `json:"type"`
}

// PrivacyService is a permission class managed through simctl privacy.
type PrivacyService string

// Services accepted by `simctl privacy` (the "all" sentinel covers every
// service the runtime knows about).
const (
	PrivacyAll             PrivacyService = "all"
	PrivacyCalendar        PrivacyService = "calendar"
	PrivacyContacts        PrivacyService = "contacts"
	PrivacyLocation        PrivacyService = "location"
	PrivacyLocationAlways  PrivacyService = "location-always"
	PrivacyPhotos          PrivacyService = "photos"
	PrivacyPhotosAdd       PrivacyService = "photos-add"
	PrivacyMicrophone      PrivacyService = "microphone"
	PrivacyCamera          PrivacyService = "camera"
	PrivacyMotion          PrivacyService = "motion"
	PrivacyReminders       PrivacyService = "reminders"
	PrivacyMediaLibrary    PrivacyService = "media-library"
	PrivacySiri            PrivacyService = "siri"
	PrivacySpeech          PrivacyService = "speech-recognition"
	PrivacyUserTracking    PrivacyService = "user-tracking"
	PrivacyFaceID          PrivacyService = "faceid"
	PrivacyHealthKit       PrivacyService = "health"
	PrivacyHomeKit         PrivacyService = "homekit"
	PrivacyNotifications   PrivacyService = "notifications"
	PrivacyBluetooth       PrivacyService = "bluetooth"
	PrivacyCalls           PrivacyService = "calls"
	PrivacySensorKit       PrivacyService = "sensorkit"
	PrivacyKeyboardNetwork PrivacyService = "keyboard-net"
)

// KnownPrivacyServices lists every service the privacy command accepts,
// used for validation and documentation output.
var KnownPrivacyServices = []PrivacyService{
	PrivacyAll, PrivacyCalendar, PrivacyContacts, PrivacyLocation,
	PrivacyLocationAlways, PrivacyPhotos, PrivacyPhotosAdd,
	PrivacyMicrophone, PrivacyCamera, PrivacyMotion, PrivacyReminders,
	PrivacyMediaLibrary, PrivacySiri, PrivacySpeech, PrivacyUserTracking,
	PrivacyFaceID, PrivacyHealthKit, PrivacyHomeKit, PrivacyNotifications,
	PrivacyBluetooth, PrivacyCalls, PrivacySensorKit, PrivacyKeyboardNetwork,
}

// IsKnownPrivacyService reports whether s is an accepted privacy service.
func IsKnownPrivacyService(s string) bool {
	for _, svc := range KnownPrivacyServices {
		if string(svc) == s {
			return true
		}
	}
	return false
}
