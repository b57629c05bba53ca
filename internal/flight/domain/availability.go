package domain

// AvailableSeats computes remaining seats for one cabin class
func AvailableSeats(capacity, booked int) int {
	return capacity - booked
}

// Availability computes remaining seats per cabin for an inventory against
// its owning schedule
func Availability(schedule *FlightSchedule, inventory *Inventory) (business, economy int) {
	business = AvailableSeats(schedule.BusinessSeatCapacity, inventory.BookedBusinessSeats)
	economy = AvailableSeats(schedule.EconomySeatCapacity, inventory.BookedEconomySeats)
	return business, economy
}

// ValidateBookedSeats checks requested booked counts against the schedule's
// capacities. Negative counts are not rejected, matching the upstream
// behavior this policy was lifted from.
func ValidateBookedSeats(schedule *FlightSchedule, bookedBusiness, bookedEconomy int) error {
	if bookedBusiness > schedule.BusinessSeatCapacity {
		return &CapacityExceededError{Cabin: CabinBusiness}
	}
	if bookedEconomy > schedule.EconomySeatCapacity {
		return &CapacityExceededError{Cabin: CabinEconomy}
	}
	return nil
}
