// Package users stores the local record of every account that signed in on
// this device (table users). Rows are upserted by id and never duplicated;
// deleting a user cascades to its learning progress.
package users
