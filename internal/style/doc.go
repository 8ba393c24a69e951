// Package style derives visual attributes of etymology graph nodes and links.
//
// Every table lives in a Theme value that the engine receives at construction,
// so two visualizations never share styling state. Two presets ship with the
// service: "basic" (category fills, frequency-keyed links) and "enriched"
// (gradient fills, strength-keyed links, a category legend). Custom themes are
// YAML files that extend a preset and override any subset of its fields.
//
// All derivation functions are pure: the same node type and properties always
// produce the same radius, fill, stroke and label style. Values missing from a
// table resolve to the table's "default" bucket, never to an empty attribute.
package style
