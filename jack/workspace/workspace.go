// Package workspace tracks open Jack source documents and their parse
// state for editor tooling.
package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/jackal/jack/parser"
)

// Diagnostic is one syntax problem found in a document.
type Diagnostic struct {
	Start   parser.Position
	End     parser.Position
	Message string
}

type File struct {
	Path        string
	Content     []byte
	Tree        *parser.Node
	Diagnostics []Diagnostic
}

type Workspace struct {
	rootDir string

	mu    sync.Mutex
	files map[string]*File
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
}

// UpdateFile reparses content and replaces the document state for
// path.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	file := &File{Path: path, Content: content}
	file.Tree, file.Diagnostics = analyze(path, content)

	w.mu.Lock()
	w.files[path] = file
	w.mu.Unlock()
	return file
}

func (w *Workspace) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// ScanAll walks the workspace root and parses every .jack file.
func (w *Workspace) ScanAll() {
	filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".jack") {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path]
}

func (w *Workspace) CloseFile(path string) {
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
}

// analyze parses one document as a class file. A syntactically valid
// class followed by leftover tokens is still diagnosed: the whole
// input must be consumed.
func analyze(path string, content []byte) (*parser.Node, []Diagnostic) {
	p := parser.ParseClass(bytes.NewReader(content), parser.WithFile(path))
	tree, err := p.Finish()
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			d := Diagnostic{Start: parseErr.Pos, End: parseErr.Pos, Message: parseErr.Message}
			if parseErr.Got != nil {
				d.End = parseErr.Got.Span.End
			}
			return nil, []Diagnostic{d}
		}
		start := parser.Position{File: path, Line: 1, Column: 1}
		return nil, []Diagnostic{{
			Start:   start,
			End:     start,
			Message: "expected a class declaration",
		}}
	}

	if rest := p.Rest(); len(rest) > 0 {
		return tree, []Diagnostic{{
			Start:   rest[0].Span.Start,
			End:     rest[0].Span.End,
			Message: fmt.Sprintf("unexpected %q after class declaration", rest[0].Literal),
		}}
	}

	return tree, nil
}
