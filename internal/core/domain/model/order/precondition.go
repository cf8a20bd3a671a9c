package order

// Precondition is the stored state a conditional write expects to find.
// The write succeeds only if the stored order still has Status and, when
// DriverUnset is true, still has no driver.
type Precondition struct {
	Status      Status
	DriverUnset bool
}

// HoldsFor reports whether stored satisfies the precondition.
func (p Precondition) HoldsFor(stored *Order) bool {
	if stored == nil || stored.status != p.Status {
		return false
	}
	return !p.DriverUnset || stored.driverID == nil
}
