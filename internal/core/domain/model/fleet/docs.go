// Package fleet holds the records a load draws its equipment and people from:
// units and the trucks, trailers and drivers they group.
//
// A resource sits in at most one unit slot at a time. Moving it between units
// goes through the assignment resolver, which checks occupancy and persists
// both units under their version numbers.
package fleet
