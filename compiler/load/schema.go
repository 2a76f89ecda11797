package load

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/syssam/modeldraw"
)

// Keys of the graph_models JSON document.
const (
	KeyGraphs    = "graphs"
	KeyAppName   = "app_name"
	KeyModels    = "models"
	KeyName      = "name"
	KeyFields    = "fields"
	KeyRelations = "relations"
	KeyType      = "type"
	KeyTarget    = "target"
)

// Document is the decoded output of `manage.py graph_models --json`.
type Document struct {
	CreatedAt string `json:"created_at,omitempty"`
	Graphs    []*App `json:"graphs"`
}

// App is one Django application: a named group of models.
type App struct {
	Name   string   `json:"app_name"`
	Models []*Model `json:"models"`
}

// Model is one Django model.
type Model struct {
	Name      string      `json:"name"`
	Label     string      `json:"label,omitempty"`
	Fields    []*Field    `json:"fields"`
	Relations []*Relation `json:"relations"`
}

// Field is one model attribute. Type holds the Django field class
// description, e.g. "ForeignKey (id)".
type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Label      string `json:"label,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	Relation   bool   `json:"relation,omitempty"`
	Blank      bool   `json:"blank,omitempty"`
}

// Relation is an explicit relation declared by a model. Only Target is
// required; the rest is carried along as-is.
type Relation struct {
	Target    string `json:"target"`
	TargetApp string `json:"target_app,omitempty"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	Label     string `json:"label,omitempty"`
	Arrows    string `json:"arrows,omitempty"`
	NeedsNode bool   `json:"needs_node,omitempty"`
	// Extra holds keys of the relation object not listed above.
	Extra map[string]any `json:"-"`
}

var relationKeys = map[string]struct{}{
	"target": {}, "target_app": {}, "name": {}, "type": {},
	"label": {}, "arrows": {}, "needs_node": {},
}

// LoadFile reads and decodes the graph document at path.
func LoadFile(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	doc, err := UnmarshalDocument(buf)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads the whole reader and decodes it as a graph document.
func Decode(r io.Reader) (*Document, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("load: read document: %w", err)
	}
	return UnmarshalDocument(buf)
}

// UnmarshalDocument decodes the given buffer to a graph document. Every
// required key must be present; values are not validated beyond that.
func UnmarshalDocument(buf []byte) (*Document, error) {
	var root object
	if err := json.Unmarshal(buf, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc := &Document{}
	if err := root.optional("", "created_at", &doc.CreatedAt); err != nil {
		return nil, err
	}
	var graphs []object
	if err := root.required("", KeyGraphs, &graphs); err != nil {
		return nil, err
	}
	doc.Graphs = make([]*App, 0, len(graphs))
	for i, raw := range graphs {
		app, err := decodeApp(fmt.Sprintf("%s[%d]", KeyGraphs, i), raw)
		if err != nil {
			return nil, err
		}
		doc.Graphs = append(doc.Graphs, app)
	}
	return doc, nil
}

func decodeApp(path string, raw object) (*App, error) {
	app := &App{}
	if err := raw.required(path, KeyAppName, &app.Name); err != nil {
		return nil, err
	}
	var models []object
	if err := raw.required(path, KeyModels, &models); err != nil {
		return nil, err
	}
	app.Models = make([]*Model, 0, len(models))
	for i, m := range models {
		model, err := decodeModel(fmt.Sprintf("%s.%s[%d]", path, KeyModels, i), m)
		if err != nil {
			return nil, err
		}
		app.Models = append(app.Models, model)
	}
	return app, nil
}

func decodeModel(path string, raw object) (*Model, error) {
	m := &Model{}
	if err := raw.required(path, KeyName, &m.Name); err != nil {
		return nil, err
	}
	if err := raw.optional(path, "label", &m.Label); err != nil {
		return nil, err
	}
	var fields, relations []object
	if err := raw.required(path, KeyFields, &fields); err != nil {
		return nil, err
	}
	if err := raw.required(path, KeyRelations, &relations); err != nil {
		return nil, err
	}
	m.Fields = make([]*Field, 0, len(fields))
	for i, f := range fields {
		fp := fmt.Sprintf("%s.%s[%d]", path, KeyFields, i)
		if err := f.has(fp, KeyName, KeyType); err != nil {
			return nil, err
		}
		field := &Field{}
		if err := f.into(fp, field); err != nil {
			return nil, err
		}
		m.Fields = append(m.Fields, field)
	}
	m.Relations = make([]*Relation, 0, len(relations))
	for i, r := range relations {
		rp := fmt.Sprintf("%s.%s[%d]", path, KeyRelations, i)
		if err := r.has(rp, KeyTarget); err != nil {
			return nil, err
		}
		rel := &Relation{}
		if err := r.into(rp, rel); err != nil {
			return nil, err
		}
		for k, v := range r {
			if _, ok := relationKeys[k]; ok {
				continue
			}
			if rel.Extra == nil {
				rel.Extra = make(map[string]any)
			}
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return nil, fmt.Errorf("decode %s.%s: %w", rp, k, err)
			}
			rel.Extra[k] = val
		}
		m.Relations = append(m.Relations, rel)
	}
	return m, nil
}

// object is a JSON object whose values are decoded lazily, so that the
// presence of keys can be checked before decoding.
type object map[string]json.RawMessage

// has returns a MissingKeyError for the first absent key.
func (o object) has(path string, keys ...string) error {
	for _, k := range keys {
		if _, ok := o[k]; !ok {
			return modeldraw.NewMissingKeyError(path, k)
		}
	}
	return nil
}

func (o object) required(path, key string, v any) error {
	if err := o.has(path, key); err != nil {
		return err
	}
	return o.optional(path, key, v)
}

func (o object) optional(path, key string, v any) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		if path == "" {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return fmt.Errorf("decode %s.%s: %w", path, key, err)
	}
	return nil
}

// into re-encodes the object and decodes it into v.
func (o object) into(path string, v any) error {
	buf, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
