// Package component defines the closed component catalogue of the runtime.
// Every record type that may be attached to an entity lives here, together
// with the exhaustive kind constants and the New factory the snapshot layer
// uses to decode serialized components.
//
// Components are plain data records with at most one instance per (entity,
// kind). Fields tagged `json:"-"` hold live external resources (providers,
// tool handlers); they are replaced by a sentinel during serialization and
// re-injected on restore.
package component
