// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Formulation preconditions surface as coded errors so the HTTP and CLI
// boundaries can report them without inspecting message text:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeInsufficientSelection,
//	    "at least 2 ingredients required",
//	    map[string]any{
//	        "category": "energy_sources",
//	        "selected": 1,
//	    },
//	)
package errors
