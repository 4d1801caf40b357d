package diagfmt

import (
	"encoding/json"
	"io"

	"shorthand/internal/ast"
	"shorthand/internal/source"
)

// TypeSpecJSON mirrors ast.TypeSpec.
type TypeSpecJSON struct {
	Base      string   `json:"base"`
	Shape     []string `json:"shape,omitempty"`
	Placement string   `json:"placement,omitempty"`
}

// TagJSON mirrors ast.Tag.
type TagJSON struct {
	Kind       string   `json:"kind"`
	Base       string   `json:"base"`
	Qualifiers []string `json:"qualifiers,omitempty"`
	HTTPMethod string   `json:"http_method,omitempty"`
	HTTPPath   string   `json:"http_path,omitempty"`
}

// ParameterJSON mirrors ast.Parameter.
type ParameterJSON struct {
	Name string       `json:"name"`
	Type TypeSpecJSON `json:"type"`
}

// FunctionJSON mirrors ast.Function.
type FunctionJSON struct {
	Name   string          `json:"name"`
	Params []ParameterJSON `json:"params"`
	Return TypeSpecJSON    `json:"return"`
	Tags   []TagJSON       `json:"tags"`
}

// StateVariableJSON mirrors ast.StateVariable.
type StateVariableJSON struct {
	Name string       `json:"name"`
	Type TypeSpecJSON `json:"type"`
}

// EntityJSON mirrors ast.Entity. Dependencies carry names only; spans
// stay out of the machine shape.
type EntityJSON struct {
	Name         string              `json:"name"`
	Dependencies []string            `json:"dependencies"`
	State        []StateVariableJSON `json:"state"`
	Methods      []FunctionJSON      `json:"methods"`
}

// DocumentJSON is the machine form of a parsed document.
type DocumentJSON struct {
	ModuleName  string           `json:"module_name"`
	Role        string           `json:"role,omitempty"`
	Entities    []EntityJSON     `json:"entities"`
	Functions   []FunctionJSON   `json:"functions"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

func makeTypeSpecJSON(t ast.TypeSpec) TypeSpecJSON {
	return TypeSpecJSON{Base: t.Base, Shape: t.Shape, Placement: t.Placement}
}

func makeTagJSON(t ast.Tag) TagJSON {
	return TagJSON{
		Kind:       t.Kind.String(),
		Base:       t.Base,
		Qualifiers: t.Qualifiers,
		HTTPMethod: t.HTTPMethod,
		HTTPPath:   t.HTTPPath,
	}
}

func makeFunctionJSON(f *ast.Function) FunctionJSON {
	out := FunctionJSON{
		Name:   f.Name,
		Params: make([]ParameterJSON, 0, len(f.Params)),
		Return: makeTypeSpecJSON(f.Return),
		Tags:   make([]TagJSON, 0, len(f.Tags)),
	}
	for _, p := range f.Params {
		out.Params = append(out.Params, ParameterJSON{Name: p.Name, Type: makeTypeSpecJSON(p.Type)})
	}
	for _, t := range f.Tags {
		out.Tags = append(out.Tags, makeTagJSON(t))
	}
	return out
}

// BuildDocumentJSON assembles the machine form of a document, including
// its diagnostics.
func BuildDocumentJSON(doc *ast.Document, fs *source.FileSet, opts JSONOpts) DocumentJSON {
	out := DocumentJSON{
		ModuleName:  doc.Metadata.ModuleName,
		Role:        doc.Metadata.Role,
		Entities:    make([]EntityJSON, 0, len(doc.Entities)),
		Functions:   make([]FunctionJSON, 0, len(doc.Functions)),
		Diagnostics: make([]DiagnosticJSON, 0, len(doc.Diagnostics)),
	}
	for _, ent := range doc.Entities {
		ej := EntityJSON{
			Name:         ent.Name,
			Dependencies: make([]string, 0, len(ent.Dependencies)),
			State:        make([]StateVariableJSON, 0, len(ent.State)),
			Methods:      make([]FunctionJSON, 0, len(ent.Methods)),
		}
		for _, dep := range ent.Dependencies {
			ej.Dependencies = append(ej.Dependencies, dep.Name)
		}
		for _, sv := range ent.State {
			ej.State = append(ej.State, StateVariableJSON{Name: sv.Name, Type: makeTypeSpecJSON(sv.Type)})
		}
		for i := range ent.Methods {
			ej.Methods = append(ej.Methods, makeFunctionJSON(&ent.Methods[i]))
		}
		out.Entities = append(out.Entities, ej)
	}
	for i := range doc.Functions {
		out.Functions = append(out.Functions, makeFunctionJSON(&doc.Functions[i]))
	}
	for i := range doc.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, makeDiagnosticJSON(&doc.Diagnostics[i], fs, opts))
	}
	return out
}

// DocumentJSONTo writes the document's machine form as indented JSON.
func DocumentJSONTo(w io.Writer, doc *ast.Document, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocumentJSON(doc, fs, opts))
}
