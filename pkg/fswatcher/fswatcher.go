package fswatcher

import (
	"path/filepath"
	"strings"
)

// Event represents a single file system notification
type Event struct {
	Name string // path to the file
	Op   Op     // file operation that triggered the event
}

// Op describes a type of event
type Op uint32

// Operations
const (
	Create Op = 1 << iota
	Write
	Remove
)

func (op Op) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Write:
		return "WRITE"
	case Remove:
		return "REMOVE"
	}
	return "?"
}

func (e Event) String() string {
	return e.Op.String() + " " + e.Name
}

var markdownExtensions = map[string]bool{".md": true, ".markdown": true, ".mdown": true, ".mkd": true}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(name))]
}
