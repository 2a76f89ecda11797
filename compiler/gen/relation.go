package gen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Policy selects how relations become edges.
type Policy int

// Relation policies.
const (
	// PolicyInferred links every field whose type carries a relation marker
	// to the entity named like the field. It is the default.
	PolicyInferred Policy = iota
	// PolicyExplicit links entities through their declared relation lists.
	PolicyExplicit
	// PolicyNone draws no edges.
	PolicyNone
)

var policyNames = [...]string{
	PolicyInferred: "inferred",
	PolicyExplicit: "explicit",
	PolicyNone:     "none",
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p.Valid() {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p >= PolicyInferred && p <= PolicyNone
}

// ParsePolicy parses a policy name as returned by String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return Policy(p), nil
		}
	}
	return 0, NewConfigError("Policy", s, "unknown relation policy; use inferred, explicit or none")
}

// PolicyFor turns the two independent command line switches into a
// policy. The explicit list wins when both are set; with neither set the
// inferred policy applies.
func PolicyFor(explicit, inferred bool) Policy {
	switch {
	case explicit:
		return PolicyExplicit
	case inferred:
		return PolicyInferred
	default:
		return PolicyInferred
	}
}

// resolveEdges fills g.Edges and g.Misses under the configured policy.
func (g *Graph) resolveEdges() error {
	switch g.Policy {
	case PolicyExplicit:
		g.resolveExplicit()
	case PolicyInferred:
		return g.resolveInferred()
	}
	return nil
}

// resolveExplicit draws one container-to-container edge per declared
// relation. Misses are recorded but not reported.
func (g *Graph) resolveExplicit() {
	for _, e := range g.Entities() {
		for _, rel := range e.Relations {
			to, err := g.resolver.Resolve(rel.Target)
			if err != nil {
				g.Misses = append(g.Misses, &Miss{
					Policy: PolicyExplicit,
					Entity: e,
					Target: rel.Target,
					Err:    NewEdgeError(e.Name, "", rel.Target, err),
				})
				continue
			}
			edge := &Edge{
				ID:     fmt.Sprintf("%s_lineTo_%s", e.Name, to.Name),
				Kind:   EdgeEntity,
				Source: e.ContainerID,
				Target: to.ContainerID,
				From:   e,
				To:     to,
			}
			if g.EdgeLabels {
				edge.Label = rel.Name
			}
			g.Edges = append(g.Edges, edge)
		}
	}
}

// resolveInferred draws one row-to-container edge per relation field whose
// name resolves. Each miss is logged as a warning.
func (g *Graph) resolveInferred() error {
	markers := g.markers()
	for _, e := range g.Entities() {
		for _, f := range e.Fields {
			if !f.HasMarker(markers) {
				continue
			}
			to, err := g.resolver.Resolve(f.Name)
			if err != nil {
				g.log.Warn("couldn't find relation target",
					zap.String("namespace", e.Namespace.Name),
					zap.String("entity", e.Name),
					zap.String("field", f.Name),
					zap.String("type", f.Type),
				)
				g.Misses = append(g.Misses, &Miss{
					Policy: PolicyInferred,
					Entity: e,
					Field:  f,
					Target: f.Name,
					Err:    NewEdgeError(e.Name, f.Name, f.Name, err),
				})
				continue
			}
			id, err := g.uniqueID(f.Name, func(suffix string) string {
				return fmt.Sprintf("%s_lineTo_%s_%s", f.Name, to.Name, suffix)
			})
			if err != nil {
				return err
			}
			g.Edges = append(g.Edges, &Edge{
				ID:     id,
				Kind:   EdgeField,
				Source: f.ID,
				Target: to.ContainerID,
				From:   e,
				Field:  f,
				To:     to,
			})
		}
	}
	return nil
}
