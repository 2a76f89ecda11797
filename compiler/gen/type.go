package gen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/syssam/modeldraw/compiler/load"
)

// The following types are the in-memory graph handed to generators.
type (
	// Graph is the document of one conversion run: the surviving namespaces
	// and the edges resolved between their entities. It is read-only once
	// NewGraph returns.
	Graph struct {
		*Config
		// Namespaces in input order, omitted ones excluded.
		Namespaces []*Namespace
		// Edges in resolution order.
		Edges []*Edge
		// Misses records every relation that did not resolve.
		Misses []*Miss

		resolver *Resolver
		ids      IDGenerator
		log      *zap.Logger
		issued   map[string]struct{}
	}

	// Namespace is a named group of entities (a Django app).
	Namespace struct {
		Name     string
		Entities []*Entity
	}

	// Entity is one model, drawn as a container.
	Entity struct {
		// Name holds the model name.
		Name string
		// Label holds the display label from the input, if any.
		Label string
		// Namespace the entity belongs to.
		Namespace *Namespace
		// Fields in input order, drawn as rows of the container.
		Fields []*Field
		// Relations holds the explicit relations as declared in the input.
		Relations []*load.Relation
		// ContainerID identifies the container. It carries a generated
		// suffix so that equal names in different namespaces never collide.
		ContainerID string
	}

	// Field is one attribute of an entity, drawn as a row.
	Field struct {
		// Name is the attribute name.
		Name string
		// Type is the declared type, e.g. "ForeignKey (id)".
		Type string
		// ID identifies the row: the container id plus the 1-based position.
		ID string
		// PrimaryKey is copied from the input.
		PrimaryKey bool
		// Entity owning the field.
		Entity *Entity
	}

	// Edge connects a container or a row to a container.
	Edge struct {
		ID     string
		Kind   EdgeKind
		Source string // Container or row identifier
		Target string // Container identifier
		Label  string
		// From is the source entity, Field the source row for field edges.
		From  *Entity
		Field *Field
		To    *Entity
	}

	// Miss is a relation whose target did not resolve.
	Miss struct {
		Policy Policy
		Entity *Entity
		Field  *Field // nil for explicit relations
		Target string
		Err    error // *EdgeError wrapping a *modeldraw.NotFoundError
	}
)

// EdgeKind tells box-to-box edges from field-to-box edges.
type EdgeKind int

// Edge kinds.
const (
	EdgeEntity EdgeKind = iota // container -> container
	EdgeField                  // row -> container
)

// String implements fmt.Stringer.
func (k EdgeKind) String() string {
	if k == EdgeField {
		return "field"
	}
	return "entity"
}

// maxIDAttempts bounds redraws when a generated identifier was already issued.
const maxIDAttempts = 64

// NewGraph builds the graph of doc: it applies namespace omission, assigns
// identifiers and resolves edges under the configured policy.
func NewGraph(c *Config, doc *load.Document) (*Graph, error) {
	if c == nil {
		c = &Config{}
	}
	if doc == nil {
		return nil, NewSchemaError("", "", "", "nil document")
	}
	g := &Graph{
		Config: c,
		ids:    c.ids(),
		log:    c.logger(),
		issued: make(map[string]struct{}),
	}
	for _, app := range doc.Graphs {
		if g.omitted(app.Name) {
			g.log.Debug("omitting namespace", zap.String("namespace", app.Name))
			continue
		}
		ns, err := g.newNamespace(app)
		if err != nil {
			return nil, err
		}
		g.Namespaces = append(g.Namespaces, ns)
	}
	g.resolver = NewResolver(g.Entities(), c.Mappings, c.Inflect)
	if err := g.resolveEdges(); err != nil {
		return nil, err
	}
	return g, nil
}

// omitted reports whether the namespace name starts with an omitted prefix.
func (g *Graph) omitted(name string) bool {
	for _, p := range g.OmitPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func (g *Graph) newNamespace(app *load.App) (*Namespace, error) {
	ns := &Namespace{
		Name:     app.Name,
		Entities: make([]*Entity, 0, len(app.Models)),
	}
	for _, m := range app.Models {
		e, err := g.newEntity(ns, m)
		if err != nil {
			return nil, err
		}
		ns.Entities = append(ns.Entities, e)
	}
	return ns, nil
}

func (g *Graph) newEntity(ns *Namespace, m *load.Model) (*Entity, error) {
	if m.Name == "" {
		return nil, NewSchemaError(ns.Name, "", "", "entity name cannot be empty")
	}
	id, err := g.uniqueID(m.Name, func(suffix string) string {
		return ContainerID(m.Name, suffix)
	})
	if err != nil {
		return nil, err
	}
	e := &Entity{
		Name:        m.Name,
		Label:       m.Label,
		Namespace:   ns,
		Relations:   m.Relations,
		ContainerID: id,
		Fields:      make([]*Field, 0, len(m.Fields)),
	}
	for i, f := range m.Fields {
		e.Fields = append(e.Fields, &Field{
			Name:       f.Name,
			Type:       f.Type,
			ID:         FieldID(id, i+1),
			PrimaryKey: f.PrimaryKey,
			Entity:     e,
		})
	}
	return e, nil
}

// uniqueID draws suffixes until format yields an identifier not issued
// before in this graph.
func (g *Graph) uniqueID(name string, format func(string) string) (string, error) {
	var id string
	for range maxIDAttempts {
		id = format(g.ids.NewID())
		if _, ok := g.issued[id]; !ok {
			g.issued[id] = struct{}{}
			return id, nil
		}
	}
	return "", &IdentifierError{Entity: name, Attempts: maxIDAttempts, Last: id}
}

// ContainerID formats the container identifier of an entity.
func ContainerID(name, suffix string) string {
	return fmt.Sprintf("%s_%s_id_1", name, suffix)
}

// FieldID formats the row identifier of the field at 1-based position pos.
func FieldID(containerID string, pos int) string {
	return fmt.Sprintf("%s_sub_%d", containerID, pos)
}

// Entities returns every entity in scan order: namespaces in input order,
// entities in input order within each namespace.
func (g *Graph) Entities() []*Entity {
	var es []*Entity
	for _, ns := range g.Namespaces {
		es = append(es, ns.Entities...)
	}
	return es
}

// Lookup resolves a target name the way relations are resolved.
func (g *Graph) Lookup(name string) (*Entity, error) {
	return g.resolver.Resolve(name)
}

// HasID reports whether id was issued to a container or row of the graph.
func (g *Graph) HasID(id string) bool {
	for _, e := range g.Entities() {
		if e.ContainerID == id {
			return true
		}
		for _, f := range e.Fields {
			if f.ID == id {
				return true
			}
		}
	}
	return false
}

// Summary lists namespaces and their entities, one per line, entities
// indented by a tab.
func (g *Graph) Summary() string {
	var b strings.Builder
	for _, ns := range g.Namespaces {
		b.WriteString(ns.Name)
		b.WriteByte('\n')
		for _, e := range ns.Entities {
			b.WriteByte('\t')
			b.WriteString(e.Name)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasMarker reports whether the field type contains one of the markers,
// ignoring case.
func (f Field) HasMarker(markers []string) bool {
	typ := strings.ToUpper(f.Type)
	for _, m := range markers {
		if strings.Contains(typ, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// Value is the row text: "name: type".
func (f Field) Value() string {
	return f.Name + ": " + f.Type
}
