// Package workspace keeps the documents of a directory tree parsed and
// reports their errors as diagnostics. It backs the check command and the
// language server.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/comb/grammar/calc"
	"github.com/dhamidi/comb/parse"
)

var log = commonlog.GetLogger("comb.workspace")

// ErrUnknownLanguage is returned for paths no language claims.
var ErrUnknownLanguage = errors.New("unknown language")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	exts    map[string]*Language
	docs    map[string]*Document
}

// Document is the last parse of one file.
type Document struct {
	Path     string
	Language *Language
	Content  []byte
	Value    any
	Err      error
	// Version counts updates of the path.
	Version int
}

type Option func(*Workspace)

// WithExtensions makes files ending in exts documents of the named
// built-in language. Unknown names are ignored.
func WithExtensions(lang string, exts ...string) Option {
	return func(w *Workspace) {
		l := LanguageNamed(lang)
		if l == nil {
			log.Warningf("no language %q for extensions %v", lang, exts)
			return
		}
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.exts[strings.ToLower(ext)] = l
		}
	}
}

// WithLanguage adds a language of the caller's own.
func WithLanguage(l *Language) Option {
	return func(w *Workspace) {
		for _, ext := range l.Extensions {
			w.exts[strings.ToLower(ext)] = l
		}
	}
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		exts:    make(map[string]*Language),
		docs:    make(map[string]*Document),
	}
	for _, l := range languages {
		for _, ext := range l.Extensions {
			w.exts[ext] = l
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// LanguageFor returns the language of path, or nil when the workspace does
// not track such files.
func (w *Workspace) LanguageFor(path string) *Language {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// walk calls f for every tracked file under the root, skipping hidden
// directories.
func (w *Workspace) walk(f func(path string, info fs.FileInfo)) error {
	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.LanguageFor(path) == nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		f(path, info)
		return nil
	})
}

// ScanAll parses every tracked file under the root.
func (w *Workspace) ScanAll() error {
	return w.walk(func(path string, _ fs.FileInfo) {
		if err := w.ScanFile(path); err != nil {
			log.Warningf("scan %s: %v", path, err)
		}
	})
}

// ScanFile reads and parses path.
func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = w.UpdateFile(path, content)
	return err
}

// UpdateFile parses content as the new text of path. A document that fails
// to parse is still stored; its error is in Document.Err.
func (w *Workspace) UpdateFile(path string, content []byte) (*Document, error) {
	l := w.LanguageFor(path)
	if l == nil {
		return nil, fmt.Errorf("update %s: %w", path, ErrUnknownLanguage)
	}
	value, perr := l.Parse(content)

	w.mu.Lock()
	defer w.mu.Unlock()
	doc := &Document{
		Path:     path,
		Language: l,
		Content:  content,
		Value:    value,
		Err:      perr,
		Version:  1,
	}
	if prev, ok := w.docs[path]; ok {
		doc.Version = prev.Version + 1
	}
	w.docs[path] = doc
	if perr != nil {
		log.Debugf("%s: %v", path, perr)
	}
	return doc, nil
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

// GetFile returns the document of path, or nil.
func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Documents returns all documents sorted by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.docs))
	for _, d := range w.docs {
		docs = append(docs, d)
	}
	w.mu.RUnlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// Diagnostics returns the diagnostics of every document, sorted by path
// and position.
func (w *Workspace) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, d := range w.Documents() {
		all = append(all, d.Diagnostics()...)
	}
	return all
}

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a problem found in a document, spanning Start to End.
type Diagnostic struct {
	Path     string
	Start    parse.Position
	End      parse.Position
	Severity Severity
	// Source names the pass that found the problem: "syntax" or the
	// language's evaluation.
	Source  string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Start, d.Severity, d.Message)
}

// Diagnostics reports the document's error, or the lint warnings of a
// document that parsed. Parse errors point at the furthest position the
// parser reached; evaluation errors that carry an offset point there,
// others at the start of the document.
func (d *Document) Diagnostics() []Diagnostic {
	if d.Err == nil {
		return d.lint()
	}
	diag := Diagnostic{Path: d.Path, Severity: SeverityError, Source: d.Language.Name, Message: d.Err.Error()}
	offset, length := 0, 0

	var perr *parse.Error
	var rerr *calc.RuntimeError
	switch {
	case errors.As(d.Err, &perr):
		at := perr.Furthest()
		offset, length = at.Offset, at.Length
		diag.Source = "syntax"
		diag.Message = perr.Summary()
	case errors.As(d.Err, &rerr):
		offset, length = rerr.Pos, 1
		diag.Message = rerr.Err.Error()
	}
	return []Diagnostic{d.span(diag, offset, length)}
}

func (d *Document) lint() []Diagnostic {
	if d.Language.Lint == nil {
		return nil
	}
	var diags []Diagnostic
	for _, p := range d.Language.Lint(d.Value) {
		diag := Diagnostic{Path: d.Path, Severity: SeverityWarning, Source: "lint", Message: p.Message}
		diags = append(diags, d.span(diag, p.Offset, 0))
	}
	return diags
}

func (d *Document) span(diag Diagnostic, offset, length int) Diagnostic {
	diag.Start = d.Language.Locate(d.Content, offset)
	diag.End = d.Language.Locate(d.Content, offset+length)
	diag.Start.Filename = d.Path
	diag.End.Filename = d.Path
	return diag
}
