package domain

// EffectiveDiscountPercent reconciles the two persisted discount fields
// into one canonical percentage. An explicit percentage wins; otherwise the
// absolute discount is expressed against the reconstructed pre-discount
// base (the stored total already has the discount subtracted). Non-positive
// totals or amounts yield no derivable discount rather than a division by
// zero.
func EffectiveDiscountPercent(totalAmount, discountAmount, discountPercent float64) float64 {
	if discountPercent > 0 {
		return discountPercent
	}
	if totalAmount > 0 && discountAmount > 0 {
		return discountAmount / (totalAmount + discountAmount) * 100
	}
	return 0
}
