// Package progress is the local learning progress table. Rows belong to a
// user (cascade delete) and are tagged by category and subcategory; at most
// one row per user/category/subcategory is kept by convention.
package progress
