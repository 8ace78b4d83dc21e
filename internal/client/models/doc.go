// Package models defines client-side data models used by the kotoba client:
// the locally persisted identity, users and learning progress, the remote
// profile and content records, and the JSON wire envelope of the API gateway.
package models
