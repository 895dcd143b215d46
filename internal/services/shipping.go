package services

// Free shipping from freeShippingThreshold, reduced fee from
// reducedShippingThreshold, standard fee below that.
const (
	freeShippingThreshold    = 100.0
	reducedShippingThreshold = 50.0
	reducedShippingFee       = 10.0
	standardShippingFee      = 15.0
)

// ShippingFee returns the delivery fee for an order subtotal.
func ShippingFee(subtotal float64) float64 {
	switch {
	case subtotal >= freeShippingThreshold:
		return 0
	case subtotal >= reducedShippingThreshold:
		return reducedShippingFee
	default:
		return standardShippingFee
	}
}
