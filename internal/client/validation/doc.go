// Package validation holds the field rules of the account and profile
// forms. Each check returns "" when the value is acceptable and a
// user-facing message otherwise.
//
// Login uses first-failure-wins rules (Email, Password) while registration
// and password change use the aggregated strength message
// (PasswordStrength), which lists every missing requirement at once.
package validation
