package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/markshot/internal/theme"
)

// ThemeEnv overrides the configured theme.
const ThemeEnv = "MARKSHOT_THEME"

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Pin  bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Output string
	Exit   bool
	Fonts  []string
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolveTheme picks the chrome theme. flag wins over the environment, which
// wins over the config file; themes defined in the file shadow theme files
// and built-ins of the same name.
func (c *Config) ResolveTheme(flag string, l *theme.Loader) (*theme.Theme, error) {
	name := flag
	if name == "" {
		name = os.Getenv(ThemeEnv)
	}
	if name == "" {
		name = c.Theme
	}
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	fmt.Fprintf(&sb, "exit = %v\n", c.Exit)
	if len(c.Fonts) > 0 {
		fmt.Fprintf(&sb, "fonts = %s\n", strings.Join(c.Fonts, ", "))
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "pin = %v\n", c.Notify.Pin)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
