// Package services holds domain logic that spans aggregates.
//
// OrderLifecycle decides whether an actor may move an order to a target
// status. It combines the order's own status graph with the role and
// ownership rules that need the user and restaurant aggregates.
package services
