// Package platform sends desktop notifications.
package platform

// AppName is the application the notification server shows.
const AppName = "markshot"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, is an image file shown with the notification
	// if the server supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays up. Zero uses the
	// platform default.
	TimeoutMillis int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}
