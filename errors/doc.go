// Package errors provides the AppError type and the ledger service's error
// taxonomy.
//
// Authentication failures are deliberately coarse: a login failure is always
// INVALID_CREDENTIALS and a failed session check is always UNAUTHORIZED,
// whatever the underlying reason was.
package errors
