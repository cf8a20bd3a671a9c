// Package user contains the User aggregate and the Role enumeration that
// decides which lifecycle moves an actor may request.
package user
