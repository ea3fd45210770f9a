// Package kernel holds the value objects shared by all freight aggregates:
//   - UUID: identifier with a detectable zero value, random or time-ordered
//   - FileRef: opaque pointer to an uploaded file (rate confirmation, bill of
//     lading, chat attachment)
//   - EquipmentType: trailer category, carried by both loads and trailers
package kernel
