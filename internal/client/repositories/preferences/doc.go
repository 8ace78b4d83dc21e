// Package preferences persists small string settings of the client in the
// local SQLite database (table preferences(key, value)).
//
// The identity store keeps the signed-in user id, email and token here. A
// missing key reads as ("", false, nil), never as an error.
package preferences
