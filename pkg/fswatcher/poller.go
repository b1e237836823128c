package fswatcher

import (
	"errors"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

const MinInterval = time.Millisecond * 20

var ErrClosed = errors.New("poller is closed")

var excludedDirs = map[string]bool{"node_modules": true}

func shouldSkip(name string) bool {
	return strings.HasPrefix(name, ".") || excludedDirs[name]
}

// Poller detects changes of the watched files by comparing their
// modification times on every scan.
type Poller struct {
	fsys  fs.FS
	match func(name string) bool

	mu      sync.Mutex
	watches map[string]struct{}
	files   map[string]fs.FileInfo
	events  chan Event
	errors  chan error
	done    chan struct{}
	running bool
	closed  bool
}

// NewPoller creates a poller over fsys. Only files accepted by match are
// tracked inside watched directories; nil accepts Markdown files.
func NewPoller(fsys fs.FS, match func(name string) bool) *Poller {
	if match == nil {
		match = IsMarkdown
	}
	return &Poller{
		fsys:    fsys,
		match:   match,
		watches: make(map[string]struct{}),
		files:   make(map[string]fs.FileInfo),
		events:  make(chan Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
	}
}

// Add starts watching name. A file is watched whatever its extension; a
// directory is walked for matching files. The tracked files are returned.
func (p *Poller) Add(name string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	name = path.Clean(strings.TrimPrefix(name, "./"))
	list, err := p.list(name)
	if err != nil {
		return nil, err
	}
	for fname, fi := range list {
		p.files[fname] = fi
	}
	p.watches[name] = struct{}{}
	return sortedKeys(list), nil
}

// Remove stops watching name.
func (p *Poller) Remove(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	name = path.Clean(name)
	delete(p.watches, name)
	for fname := range p.files {
		if fname == name || strings.HasPrefix(fname, name+"/") {
			delete(p.files, fname)
		}
	}
	return nil
}

// Files returns the tracked files in lexical order.
func (p *Poller) Files() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedKeys(p.files)
}

func (p *Poller) list(name string) (map[string]fs.FileInfo, error) {
	files := make(map[string]fs.FileInfo)
	info, err := fs.Stat(p.fsys, name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		files[name] = info
		return files, nil
	}
	err = fs.WalkDir(p.fsys, name, func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// skip hidden and some other dirs
			if fpath != name && shouldSkip(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !p.match(fpath) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files[fpath] = fi
		return nil
	})
	return files, err
}

// Scan compares the watched paths with the previous scan and returns the
// changes ordered by file name.
func (p *Poller) Scan() ([]Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := make(map[string]fs.FileInfo)
	var errs []error
	for name := range p.watches {
		list, err := p.list(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for fname, fi := range list {
			current[fname] = fi
		}
	}

	var events []Event
	for name, old := range p.files {
		fi, ok := current[name]
		switch {
		case !ok:
			events = append(events, Event{Name: name, Op: Remove})
		case !fi.ModTime().Equal(old.ModTime()) || fi.Size() != old.Size():
			events = append(events, Event{Name: name, Op: Write})
		}
	}
	for name := range current {
		if _, ok := p.files[name]; !ok {
			events = append(events, Event{Name: name, Op: Create})
		}
	}
	p.files = current
	slices.SortFunc(events, func(a, b Event) int { return strings.Compare(a.Name, b.Name) })
	return events, errors.Join(errs...)
}

// Start scans every interval and delivers the changes on Events until the
// poller is closed.
func (p *Poller) Start(interval time.Duration) error {
	interval = max(interval, MinInterval)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("poller is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
		}
		events, err := p.Scan()
		if err != nil && !p.sendError(err) {
			return nil
		}
		for _, e := range events {
			if !p.sendEvent(e) {
				return nil
			}
		}
	}
}

func (p *Poller) sendEvent(e Event) bool {
	select {
	case p.events <- e:
		return true
	case <-p.done:
		return false
	}
}

func (p *Poller) sendError(err error) bool {
	select {
	case p.errors <- err:
		return true
	case <-p.done:
		return false
	}
}

func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	return nil
}

func (p *Poller) Events() <-chan Event { return p.events }

func (p *Poller) Errors() <-chan error { return p.errors }

func sortedKeys(m map[string]fs.FileInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
