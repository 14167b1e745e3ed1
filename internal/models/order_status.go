package models

// StatusTrack is the linear progression the tracking page draws.
// Cancelled is deliberately not on it.
var StatusTrack = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
}

// StatusStyle is how a status string is rendered
type StatusStyle struct {
	Label string
	Color string // tailwind color family
	Icon  string
}

var statusStyles = map[OrderStatus]StatusStyle{
	OrderPending:    {Label: "Pending", Color: "yellow", Icon: "clock"},
	OrderConfirmed:  {Label: "Confirmed", Color: "blue", Icon: "check-circle"},
	OrderProcessing: {Label: "Processing", Color: "purple", Icon: "cog"},
	OrderShipped:    {Label: "Shipped", Color: "indigo", Icon: "truck"},
	OrderDelivered:  {Label: "Delivered", Color: "green", Icon: "gift"},
	OrderCancelled:  {Label: "Cancelled", Color: "red", Icon: "x-circle"},
}

var paymentStyles = map[PaymentStatus]StatusStyle{
	PaymentPending:  {Label: "Payment Pending", Color: "yellow", Icon: "clock"},
	PaymentPaid:     {Label: "Paid", Color: "green", Icon: "check-circle"},
	PaymentFailed:   {Label: "Payment Failed", Color: "red", Icon: "x-circle"},
	PaymentRefunded: {Label: "Refunded", Color: "gray", Icon: "receipt-refund"},
}

// StatusDisplay maps a server status through the fixed lookup table.
// Unknown strings keep their verbatim text with the neutral style.
func StatusDisplay(status OrderStatus) StatusStyle {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return StatusStyle{Label: string(status), Color: "gray", Icon: "question-mark-circle"}
}

// PaymentDisplay is StatusDisplay for payment status
func PaymentDisplay(status PaymentStatus) StatusStyle {
	if style, ok := paymentStyles[status]; ok {
		return style
	}
	return StatusStyle{Label: string(status), Color: "gray", Icon: "question-mark-circle"}
}

// StepState describes one step of the five-stage timeline
type StepState struct {
	Status    OrderStatus
	Style     StatusStyle
	Completed bool
	Current   bool
}

// StatusProgress is the timeline view of an order status
type StatusProgress struct {
	Percent   int
	Cancelled bool
	Known     bool
	Steps     []StepState
}

// Progress computes (index+1)/5*100 for the linear states. Cancelled is a
// terminal visualization at 100% regardless of history. Unknown statuses
// produce 0% with no completed steps.
func Progress(status OrderStatus) StatusProgress {
	p := StatusProgress{Steps: make([]StepState, len(StatusTrack))}

	index := -1
	for i, s := range StatusTrack {
		if s == status {
			index = i
			break
		}
	}

	switch {
	case status == OrderCancelled:
		p.Cancelled = true
		p.Known = true
		p.Percent = 100
	case index >= 0:
		p.Known = true
		p.Percent = (index + 1) * 100 / len(StatusTrack)
	}

	for i, s := range StatusTrack {
		p.Steps[i] = StepState{
			Status:    s,
			Style:     StatusDisplay(s),
			Completed: index >= 0 && i <= index,
			Current:   i == index,
		}
	}

	return p
}

// AdminStatusOptions lists the statuses an admin may set, in display order
func AdminStatusOptions() []OrderStatus {
	return append(append([]OrderStatus{}, StatusTrack...), OrderCancelled)
}

// ValidOrderStatus reports whether s is one of the six known statuses
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := statusStyles[s]
	return ok
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	_, ok := paymentStyles[s]
	return ok
}
