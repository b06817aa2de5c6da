// Package executor implements a breadth-first, batch-friendly GraphQL executor
// built around the immutable step records of the execution package.
//
// # Overview
//
// The executor follows a level-by-level (BFS) execution model designed to:
//   - Expand synchronous fields immediately without adding batch depth.
//   - Collect asynchronous fields encountered at the current depth and resolve
//     them in a single call to Runtime.BatchResolveAsync.
//   - Complete values according to the GraphQL specification (lists, leafs,
//     objects, abstract types), including Non-Null null-propagation rules.
//   - Accumulate located errors while allowing partial success.
//
// # Step records
//
// Every field position gets an execution.StepInfo record before resolution:
// effective output type, field definition, defining type, coerced arguments
// and response path, linked to the parent record. Completion derives new
// records instead of recomputing context:
//   - List elements get one record per element via NewStepForListElement,
//     removing exactly one list wrapper and appending the index to the path.
//   - Abstract fields are narrowed to the runtime object type via
//     ChangeTypeWithPreservedNonNull, so an Animal! position resolving to a
//     Dog completes as Dog! without losing the nullability contract.
//
// DescribeSteps performs the same walk statically, producing the step records
// an execution would derive without resolving any values.
//
// # Execution model
//
// The executor repeats the following cycle until no async tasks remain:
//
//	A. Sync expansion
//	   - For each collected field, build its step record and classify it by
//	     schema.Field.Async. Sync fields call Runtime.ResolveSync and complete
//	     immediately, expanding object results downward without increasing
//	     depth. Async fields enqueue an AsyncResolveTask carrying their step.
//
//	B. Batch execution
//	   - If there are async tasks at this depth, call Runtime.BatchResolveAsync
//	     exactly once with all of them (after filtering out paths nullified by
//	     prior Non-Null violations). The runtime must return one result per
//	     task, in the same order.
//
//	C. Non-Null propagation and pruning
//	   - A Non-Null violation walks the step's ancestor chain to the nearest
//	     nullable ancestor, writes null at that position, and marks the path
//	     as a tombstone so queued tasks under it are dropped. When every
//	     ancestor up to the root is Non-Null, the entire response data becomes
//	     null. Errors are recorded as located errors either way.
//
// For a graph with asynchronous depth d, BatchResolveAsync is invoked exactly
// d times. Purely synchronous descents do not increase d.
//
// # Errors and partial success
//
// Errors are accumulated as located GraphQL errors (message + path). For a
// Non-Null field, a null result or error triggers propagation along the step
// chain; otherwise, the field value is set to null and execution continues.
// Batch results are independent, enabling partial success within a single
// batch call.
package executor
