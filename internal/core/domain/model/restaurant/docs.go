// Package restaurant contains the Restaurant aggregate and its menu.
//
// A restaurant is owned by exactly one restaurant-role user. The menu is an
// ordered list of items with unique identifiers; every mutation replaces the
// whole list, so readers never observe a partially edited menu.
package restaurant
