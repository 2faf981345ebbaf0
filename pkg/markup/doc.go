// Package markup implements a small attributed tree used to build HTML
// fragments programmatically. Nodes carry an immutable tag, an ordered set of
// string attributes and an append-only list of children (nodes or literal
// text). Serialization is intentionally literal: attribute values and text are
// written as given, so callers sanitise anything that originates from users
// before it reaches the tree.
//
// A node may be attached to at most one parent. Attaching a node twice, or
// attaching an ancestor beneath one of its descendants, panics with a
// *ContractError because it indicates a programming error rather than bad
// input.
package markup
