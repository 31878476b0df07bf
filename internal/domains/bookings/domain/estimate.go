package domain

import "time"

// DefaultTransitDays applies to unrecognized shipment types.
const DefaultTransitDays = 7

var transitDays = map[ShipmentType]map[Priority]int{
	ShipmentAirFreight:    {PriorityUrgent: 3, PriorityExpress: 5, PriorityStandard: 7},
	ShipmentSeaFreight:    {PriorityUrgent: 14, PriorityExpress: 21, PriorityStandard: 30},
	ShipmentLandTransport: {PriorityUrgent: 1, PriorityExpress: 3, PriorityStandard: 5},
}

// TransitDays returns the number of days between booking and delivery.
// Unknown priorities use the Standard column.
func TransitDays(shipmentType ShipmentType, priority Priority) int {
	byPriority, ok := transitDays[shipmentType]
	if !ok {
		return DefaultTransitDays
	}
	if days, ok := byPriority[priority]; ok {
		return days
	}
	return byPriority[PriorityStandard]
}

// EstimateDelivery returns the UTC calendar date TransitDays after now.
func EstimateDelivery(shipmentType ShipmentType, priority Priority, now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+TransitDays(shipmentType, priority), 0, 0, 0, 0, time.UTC)
}
