package utils

import "errors"

// ErrorRecordNotFound is returned by lookups for rows that do not exist or
// belong to another business. Handlers map it to 404.
var ErrorRecordNotFound = errors.New("record not found")
