package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// Write failures are returned wrapped with app_errors.ErrPersistence so the
// service recorder can classify them without knowing which driver is in use.

// ErrUnknownDriver is returned by Open when DOCSTORE_DRIVER names no known driver.
var ErrUnknownDriver = errors.New("repository: unknown document store driver")
