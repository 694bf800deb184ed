package approval

import (
	"errors"
	"fmt"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
)

// ErrApprovalRole rejects actors that may never clear quotations.
var ErrApprovalRole = errors.New("only managers and admins may approve or reject quotations")

// LimitError denies a manager whose delegated discount authority is
// exceeded. The message discloses the manager's limit so the client can
// route the quotation to an admin instead.
type LimitError struct {
	Limit     float64
	Effective float64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("effective discount %.2f%% exceeds your approval limit of %.2f%%; an admin must approve this quotation", e.Effective, e.Limit)
}

// CanApprove gates the explicit approve action. This check is independent
// of, and additional to, the escalation triggers: even a non-discount
// escalation still needs a manager or admin to clear it.
func CanApprove(actor authdomain.Actor, q *quotationdomain.Quotation) error {
	if !actor.CanModerate() {
		return ErrApprovalRole
	}
	if actor.Role == authdomain.RoleAdmin {
		return nil
	}
	effective := q.EffectiveDiscountPercent()
	if effective > actor.DiscountLimit() {
		return &LimitError{Limit: actor.DiscountLimit(), Effective: effective}
	}
	return nil
}

// CanReject gates the explicit reject action; only the role matters,
// rejection carries no discount authority.
func CanReject(actor authdomain.Actor) error {
	if !actor.CanModerate() {
		return ErrApprovalRole
	}
	return nil
}
