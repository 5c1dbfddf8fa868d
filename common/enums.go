// Enums shared between configuration and commands. Kept separately so config
// does not depend on command packages and vice versa.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested output type for built selectors.
// ENUM(text, json)
type OutputFmt int
