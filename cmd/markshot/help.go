package main

import (
	"bytes"
	"embed"
	"flag"
	"log"
	"sync"
	"text/template"
)

// Help pages live in templates/, one per command: root.txt lists the
// commands and the notification and theme flags, edit.txt the editor keys,
// pin.txt the pinned window keys and config.txt the print/save actions.
//
//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": flagInfos,
	}).ParseFS(helpFS, "templates/*.txt"))
}

// flagInfo is one row of a command's flag table.
type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

func flagInfos(fs *flag.FlagSet) []flagInfo {
	result := []flagInfo{}
	if fs == nil {
		return result
	}
	fs.VisitAll(func(f *flag.Flag) {
		result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
	})
	return result
}

// HelpData is what a help page renders: the command line that reached the
// command ("markshot edit"), its page and its flags.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError is returned for -help, a missing config action or an unknown
// command. main prints its help page and exits cleanly.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("rendering %s help: %v", e.of.Program(), err)
		return "", err
	}
	return buf.String(), nil
}

func (r *root) Template() string { return "root.txt" }

func (e *editCmd) Template() string { return "edit.txt" }

func (p *pinCmd) Template() string { return "pin.txt" }

func (c *configCmd) Template() string { return "config.txt" }
