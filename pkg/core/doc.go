// Package core defines the collaborators the locator engine talks to: the
// search criterion, the driver and element handles, conditions, and the
// search contexts that add waiting on top of a locator.
package core
