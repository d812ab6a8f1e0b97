// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "node did not answer counter query",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "node": nodeName,
//	        "deadline": deadline,
//	    },
//	)
package errors
