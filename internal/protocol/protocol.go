// Package protocol implements the line-oriented text protocol spoken between
// the server and its clients. A line is a command or message type followed
// by colon-separated fields and terminated by a newline.
//
// Client to server:
//
//	REGISTER:<name>
//	REGISTER_CUSTOMER:<name>
//	ORDER:<pizzaType>:<address>
//	READY
//	NOTREADY
//	OUTFORDELIVERY:<orderId>
//	ARRIVED:<orderId>:<x>:<y>
//	DELIVERED:<orderId>
//	LOCATION:<x>:<y>
//	STATUS:<orderId>
//	DISCONNECT
//
// Server to client messages are built with the New* constructors below and
// rendered with Message.String.
package protocol

import (
	"errors"
	"strings"
)

// Delimiter separates the fields of a line.
const Delimiter = ":"

// Command is the first field of a client line.
type Command string

const (
	Register         Command = "REGISTER"
	RegisterCustomer Command = "REGISTER_CUSTOMER"
	Order            Command = "ORDER"
	Ready            Command = "READY"
	NotReady         Command = "NOTREADY"
	OutForDelivery   Command = "OUTFORDELIVERY"
	Arrived          Command = "ARRIVED"
	Delivered        Command = "DELIVERED"
	Location         Command = "LOCATION"
	Status           Command = "STATUS"
	Disconnect       Command = "DISCONNECT"
)

// ErrEmptyMessage is returned by Parse for blank lines.
var ErrEmptyMessage = errors.New("Empty message")

// Request is one parsed client line.
type Request struct {
	Command Command
	Args    []string
}

// Parse splits a client line into its command and arguments. Surrounding
// whitespace and the line terminator are ignored; arguments are kept as sent.
func Parse(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Request{}, ErrEmptyMessage
	}

	parts := strings.Split(line, Delimiter)
	return Request{
		Command: Command(strings.TrimSpace(parts[0])),
		Args:    parts[1:],
	}, nil
}

// Arg returns the i-th argument, or false if it was not sent.
func (r Request) Arg(i int) (string, bool) {
	if i < 0 || i >= len(r.Args) {
		return "", false
	}
	return r.Args[i], true
}

// HasArgs reports whether at least n arguments were sent.
func (r Request) HasArgs(n int) bool {
	return len(r.Args) >= n
}
