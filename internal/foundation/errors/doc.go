// Package errors provides the classified error primitives used across how2use.
//
// Every failure a documentation run can produce is expressed as a ClassifiedError
// carrying a category and a small context map. The category decides the exit
// code the CLI returns and the status the preview server answers with.
//
// Example usage:
//
//	err := errors.LookupError("code block was never sealed").
//		WithContext("document", doc.Name()).
//		WithContext("block", name).
//		Build()
package errors
