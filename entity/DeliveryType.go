package entity

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"
	DeliveryDineIn   DeliveryType = "dine_in"
	DeliveryDelivery DeliveryType = "delivery"
)

func ValidDeliveryType(t string) bool {
	switch DeliveryType(t) {
	case DeliveryPickup, DeliveryDineIn, DeliveryDelivery:
		return true
	}
	return false
}
