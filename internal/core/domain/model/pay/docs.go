// Package pay holds other-pay items and the pay reconciliation function that
// turns base pay, miles and items into total pay and the per-mile rate.
package pay
