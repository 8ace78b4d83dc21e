// Package services contains the client repositories: thin wrappers around
// the API gateway and the local stores that map every result to a uniform
// (value, error) pair.
//
// Errors follow one taxonomy, matched with errors.Is/As:
//
//   - *ValidationError: bad local input, no network call was made
//   - ErrEmptyIdentity: no signed-in user id is stored locally
//   - *TransportError: network failure, timeout, or a bare non-2xx status
//   - *ServerDeclinedError: success=false, or a non-2xx status with a message
//   - ErrEmptyResponse: success without the expected data
//   - ErrImageProcessing: an avatar could not be converted
//   - *StorageError: the local database failed
//
// UserMessage renders any of them as text for the user.
package services
