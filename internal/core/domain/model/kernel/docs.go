// Package kernel holds the value objects shared by every LocalEats
// aggregate: identifiers and money.
package kernel
