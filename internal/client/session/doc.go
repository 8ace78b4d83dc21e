// Package session implements the account controllers: login, registration
// and password recovery.
//
// Controllers expose their state as observables and run every operation
// as a blocking call that ends in exactly one terminal state update. A UI
// calls them from its own goroutine. Each controller allows one operation
// in flight; a call made while another is running returns the current
// state without side effects.
package session
