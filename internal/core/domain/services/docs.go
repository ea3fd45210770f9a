// Package services holds the domain rules that span more than one aggregate:
//   - PayReconciler: derived pay fields of a load from its other-pay rows
//   - StopItinerary: stop naming and the load's ordered stop list
//   - AssignmentResolver: unit cascade onto loads, resource moves between units
//
// None of them touch storage; callers load the aggregates and persist the
// results.
package services
