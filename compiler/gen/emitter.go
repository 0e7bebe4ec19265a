package gen

import "path/filepath"

// Output is one generated file.
type Output struct {
	Content string
	Dir     string
	File    string
}

// Path returns the file path of the output.
func (o Output) Path() string {
	return filepath.Join(o.Dir, o.File)
}

// Emit returns a single output. It is a convenience for emitter hooks.
func Emit(content, dir, file string) []Output {
	return []Output{{Content: content, Dir: dir, File: file}}
}

// Emitter is a visitor producing outputs for the nodes of an ontology.
// The hooks are called in a fixed order: OnStart, OnOntology, then for
// every package OnPackage followed by OnClass for its classes and OnEnum
// for its enums, and finally OnEnd. A hook returning no outputs emits
// nothing for the node.
type Emitter interface {
	OnStart(*Context) ([]Output, error)
	OnOntology(*Context) ([]Output, error)
	OnPackage(*Context) ([]Output, error)
	OnClass(*Context) ([]Output, error)
	OnEnum(*Context) ([]Output, error)
	OnEnd(*Context) ([]Output, error)
}

// BaseEmitter implements every Emitter hook as a no-op. Embed it to
// implement only the hooks of interest.
type BaseEmitter struct{}

// OnStart implements Emitter.
func (BaseEmitter) OnStart(*Context) ([]Output, error) { return nil, nil }

// OnOntology implements Emitter.
func (BaseEmitter) OnOntology(*Context) ([]Output, error) { return nil, nil }

// OnPackage implements Emitter.
func (BaseEmitter) OnPackage(*Context) ([]Output, error) { return nil, nil }

// OnClass implements Emitter.
func (BaseEmitter) OnClass(*Context) ([]Output, error) { return nil, nil }

// OnEnum implements Emitter.
func (BaseEmitter) OnEnum(*Context) ([]Output, error) { return nil, nil }

// OnEnd implements Emitter.
func (BaseEmitter) OnEnd(*Context) ([]Output, error) { return nil, nil }

// NamedEmitter pairs an emitter with its key. The key selects the
// template subdirectory of the emitter.
type NamedEmitter struct {
	Key     string
	Emitter Emitter
}
