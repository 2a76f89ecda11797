// Package gen builds the entity graph of a Django graph_models document
// and renders it through a Generator.
//
// # Pipeline
//
//	load.Document (compiler/load)
//	        ↓
//	   NewGraph: namespace omission, identifiers, relation resolution
//	        ↓
//	   Graph (Namespaces → Entities → Fields, Edges, Misses)
//	        ↓
//	   Generator (compiler/gen/drawio)
//
// # Identifiers
//
// Every entity gets a container identifier "<name>_<suffix>_id_1", where
// the suffix is drawn from the configured IDGenerator. A graph never issues
// the same identifier twice: a colliding draw is redrawn. Rows are
// identified by "<container>_sub_<n>" with n the 1-based field position, so
// field identifiers are fixed once the container identifier is.
//
//	gen.NewConfig(gen.WithIDGenerator(&gen.SequenceGenerator{})) // deterministic
//	gen.NewConfig(gen.WithIDGenerator(gen.UUIDGenerator{}))
//
// # Relation policies
//
// PolicyExplicit draws a container-to-container edge for every declared
// relation whose target resolves. PolicyInferred, the default, draws a
// row-to-container edge for every field whose type contains a relation
// marker (ForeignKey, ManyToMany, OneToOneField) and whose name resolves.
//
// Unresolved targets never fail a run. They are recorded in Graph.Misses;
// under PolicyInferred each one is also logged as a warning.
//
// # Target resolution
//
// Targets are lower-cased, rewritten by the first matching entry of the
// name mapping table and matched against lower-cased entity names. See
// Resolver.
//
// # Error Handling
//
//   - SchemaError: the input cannot form a graph
//   - ConfigError: invalid option values
//   - EdgeError: attached to a Miss, never returned
//   - GenerationError: rendering or writing failed
//   - IdentifierError: the IDGenerator kept repeating itself
package gen
