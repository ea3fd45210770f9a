// Package load models a freight shipment: the Load aggregate, its status
// state machine and its document slots.
//
// Status moves through an explicit transition table (Transition) that is pure
// and testable on its own. Load.Advance adds the per-status required field
// check on top of it; Load.SetStatus is the operator override that skips both.
//
// Pay fields split into operator input (load_pay, the manual total_pay, miles)
// and derived output (effective total_pay, total_miles, per_mile). The derived
// part is computed outside the aggregate and stored with ApplyPay.
package load
