// Package notify tells the desktop when an export finished.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/markshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when an image is written to a file.
	EventSave Event = "save"
	// EventCopy fires when an image is put on the clipboard.
	EventCopy Event = "copy"
	// EventPin fires when an image is pinned to the screen.
	EventPin Event = "pin"
)

// Events lists every event in display order.
var Events = []Event{EventSave, EventCopy, EventPin}

// Preferences holds the notification texts. Templates take one %s.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "markshot",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
			EventPin:  "Pinned %s",
		},
	}
}

// LoadPreferences applies MARKSHOT_NOTIFY_* overrides from the environment.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("MARKSHOT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, ev := range Events {
		key := "MARKSHOT_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// Sender delivers one notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends notifications for the enabled events. A nil Notifier is
// silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New returns a notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: templates},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
	}
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event is on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file. "-" means standard output.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	switch {
	case detail == "-":
		detail = "to standard output"
	default:
		if abs, err := filepath.Abs(detail); err == nil {
			detail = abs
			if _, err := os.Stat(abs); err == nil {
				opts.IconPath = abs
			}
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard write.
func (n *Notifier) Copy() {
	if !n.Enabled(EventCopy) {
		return
	}
	n.dispatch(EventCopy, "image", platform.Options{})
}

// Pin announces a pinned image, with img as the preview.
func (n *Notifier) Pin(img image.Image) {
	if !n.Enabled(EventPin) {
		return
	}
	opts := platform.Options{}
	detail := "image"
	if img != nil {
		b := img.Bounds()
		detail = fmt.Sprintf("%dx%d image", b.Dx(), b.Dy())
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventPin, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" || n.send == nil {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, detail))
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// previewSize bounds the thumbnail attached to pin notifications.
const previewSize = 256

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "markshot-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	thumb := imaging.Fit(img, previewSize, previewSize, imaging.Lanczos)
	if err := imaging.Encode(f, thumb, imaging.PNG); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
