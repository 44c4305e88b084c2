// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here. Each field
// carries the dotted Path of its value inside a content record, so renderers
// and record collectors never recompute locations. Descriptor options flow
// into field metadata under the `option.` prefix, while the curated UIHints
// map surfaces renderer-facing directives such as `placeholder`, `helpText`,
// `inputType`, `unit` and `widget`. Image fields expand into their record
// members: the asset reference and, when hotspot is enabled, the hotspot box
// and crop insets, all tagged with `image.part` metadata.
package model
