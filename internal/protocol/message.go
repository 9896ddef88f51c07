package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageType is the first field of a server line.
type MessageType string

const (
	Registered     MessageType = "REGISTERED"
	OrderCreated   MessageType = "ORDER_CREATED"
	Assign         MessageType = "ASSIGN"
	DriverAssigned MessageType = "DRIVER_ASSIGNED"
	StatusUpdate   MessageType = "STATUS_UPDATE"
	Estimated      MessageType = "ESTIMATED"
	DriverArrived  MessageType = "DRIVER_ARRIVED"
	Satisfaction   MessageType = "SATISFACTION"
	Accepted       MessageType = "ACCEPTED"
	Error          MessageType = "ERROR"
	UDPLocation    MessageType = "UDP_LOCATION"
)

// Status texts carried by STATUS_UPDATE.
const (
	StatusPreparing        = "Preparing"
	StatusReadyForPickup   = "ReadyForPickup"
	StatusWaitingForDriver = "WaitingForDriver"
	StatusDelivered        = "Delivered"
)

// Message is one server line.
type Message struct {
	Type   MessageType
	Fields []string
}

// String renders the message without the line terminator.
func (m Message) String() string {
	if len(m.Fields) == 0 {
		return string(m.Type)
	}
	return string(m.Type) + Delimiter + strings.Join(m.Fields, Delimiter)
}

func newMessage(t MessageType, fields ...string) Message {
	return Message{Type: t, Fields: fields}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// NewDriverRegistered is the reply to REGISTER.
func NewDriverRegistered(driverID string, x, y int, branchID, branchName string) Message {
	return newMessage(Registered, driverID, itoa(x), itoa(y), branchID, branchName)
}

// NewCustomerRegistered is the reply to REGISTER_CUSTOMER.
func NewCustomerRegistered(customerID string, x, y int) Message {
	return newMessage(Registered, customerID, itoa(x), itoa(y))
}

func NewOrderCreated(orderID string) Message {
	return newMessage(OrderCreated, orderID)
}

// NewAssign tells a driver which order to pick up and where to bring it.
func NewAssign(orderID, pizzaType, address string, customerX, customerY int) Message {
	return newMessage(Assign, orderID, pizzaType, address, itoa(customerX), itoa(customerY))
}

// NewDriverAssigned tells a customer who is bringing the order and from which branch.
func NewDriverAssigned(orderID, driverName, branchID, branchName string, branchX, branchY int) Message {
	return newMessage(DriverAssigned, orderID, driverName, branchID, branchName, itoa(branchX), itoa(branchY))
}

func NewStatusUpdate(orderID, statusText string) Message {
	return newMessage(StatusUpdate, orderID, statusText)
}

// OutForDeliveryStatus composes the status text sent when a driver leaves
// with the order. The text contains the field delimiter ("Distance: ..."),
// so clients read everything after "<orderId>:" as the status text.
func OutForDeliveryStatus(driverName string, x, y int, distance float64) string {
	return fmt.Sprintf("OutForDelivery from Driver %s (%d, %d) - Distance: %.1f units", driverName, x, y, distance)
}

func NewEstimated(orderID string, seconds int) Message {
	return newMessage(Estimated, orderID, itoa(seconds))
}

func NewDriverArrived(orderID, driverName string, x, y int) Message {
	return newMessage(DriverArrived, orderID, driverName, itoa(x), itoa(y))
}

func NewSatisfaction(orderID string, score, actualSeconds, estimatedSeconds int) Message {
	return newMessage(Satisfaction, orderID, itoa(score), itoa(actualSeconds), itoa(estimatedSeconds))
}

func NewAccepted() Message {
	return newMessage(Accepted)
}

// NewError reports a rejected command. The connection stays usable.
// Line breaks in reason are flattened so the reply stays one line.
func NewError(reason string) Message {
	return newMessage(Error, flatten.Replace(strings.TrimSpace(reason)))
}

var flatten = strings.NewReplacer("\r\n", "; ", "\n", "; ", "\r", " ")

// NewLocationBroadcast is the datagram published for a delivering driver.
func NewLocationBroadcast(driverID string, x, y int, driverName, orderID string) Message {
	return newMessage(UDPLocation, driverID, itoa(x), itoa(y), driverName, orderID)
}
