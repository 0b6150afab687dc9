package core

import "errors"

// Every rejected call surfaces one of these; callers can errors.Is against
// them instead of parsing a generic revert.
var (
	ErrorInvalidAmount         = errors.New("invalid amount")
	ErrorInsufficientBalance   = errors.New("insufficient balance")
	ErrorInsufficientAllowance = errors.New("insufficient allowance")
	ErrorInsufficientSupply    = errors.New("ticket supply exhausted")
	ErrorUnknownTicket         = errors.New("unknown ticket")
	ErrorNotOwnerOrNotApproved = errors.New("not owner or not approved")
	ErrorInvalidSignature      = errors.New("invalid signature")
	ErrorOrderConsumed         = errors.New("order already consumed")
	ErrorPriceCapExceeded      = errors.New("price exceeds resale cap")
)
