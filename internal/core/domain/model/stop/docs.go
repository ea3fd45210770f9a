// Package stop models the waypoints of a load's itinerary.
//
// A stop carries exactly one schedule form: a fixed appointment, a
// first-come-first-served window, or none. Names are PICKUP, DELIVERY or
// Stop-N; choosing the next free name is the itinerary's job, not the stop's.
package stop
