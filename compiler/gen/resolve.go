package gen

import (
	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/modeldraw"
	"github.com/syssam/modeldraw/compiler/load"
)

// Resolver maps relation target names to entities.
//
// A candidate is lower-cased, then replaced by the target of the first
// mapping whose lower-cased name equals it, then matched against the
// lower-cased entity names. When several entities share a name the first
// one in scan order wins, and so does the first of several mappings for
// the same name.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	lower    cases.Caser
	mappings map[string]string
	entities map[string]*Entity
	inflect  bool
}

// NewResolver indexes entities and mappings. Both are taken in order.
func NewResolver(entities []*Entity, mappings []*load.Mapping, inflection bool) *Resolver {
	r := &Resolver{
		lower:    cases.Lower(language.Und),
		mappings: make(map[string]string, len(mappings)),
		entities: make(map[string]*Entity, len(entities)),
		inflect:  inflection,
	}
	for _, m := range mappings {
		if m == nil {
			continue
		}
		from := r.fold(m.Name)
		if _, ok := r.mappings[from]; !ok {
			r.mappings[from] = r.fold(m.MapsTo)
		}
	}
	for _, e := range entities {
		name := r.fold(e.Name)
		if _, ok := r.entities[name]; !ok {
			r.entities[name] = e
		}
	}
	return r
}

func (r *Resolver) fold(s string) string {
	return r.lower.String(s)
}

// Candidate returns the name that is looked up for target: lower-cased and
// mapped.
func (r *Resolver) Candidate(target string) string {
	c := r.fold(target)
	if to, ok := r.mappings[c]; ok {
		return to
	}
	return c
}

// Resolve returns the entity target refers to, or a *modeldraw.NotFoundError.
func (r *Resolver) Resolve(target string) (*Entity, error) {
	c := r.Candidate(target)
	if e, ok := r.entities[c]; ok {
		return e, nil
	}
	if r.inflect {
		// order_items -> OrderItem -> orderitem
		alt := r.fold(inflect.Camelize(inflect.Singularize(c)))
		if e, ok := r.entities[alt]; ok {
			return e, nil
		}
	}
	return nil, modeldraw.NewNotFoundError(target, c)
}
