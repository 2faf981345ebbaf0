// Package validation checks raw form submissions against a model.Schema.
//
// Every field is evaluated independently in schema order and all problems are
// collected into a Result; user mistakes never become Go errors. Misuse of the
// API, such as writing to a frozen Result or recording a value for an id the
// schema does not declare, panics with a *ContractError naming the caller.
package validation
