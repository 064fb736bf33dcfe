// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformedUpstream,
//	    "failed to decode manifest",
//	    decodeErr,
//	    map[string]interface{}{
//	        "key":    "data/v1/latest.json",
//	        "bucket": bucket,
//	    },
//	)
package errors
