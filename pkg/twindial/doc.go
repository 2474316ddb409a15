// Package twindial provides an in-process fake Twilio client for tests.
//
// The fake client validates parameters the way the real client does, records
// every call it accepts, and returns configurable synthetic responses — all
// without network I/O. It is the in-process counterpart to running a twin
// server: point your code at a *Client instead of the real SDK and assert on
// what it sent.
//
// Basic usage:
//
//	c := twindial.New(twindial.Config{})
//	msg, err := c.Messages.Create(twindial.MessageParams{
//		To:   "+15551234567",
//		From: "+15559876543",
//		Body: "Hello",
//	})
//	// msg.Status == "sent", msg.Body == "Hello"
//
//	// Verify the call was made with the expected wire parameters.
//	err = c.AssertCalledWith("messages.create", map[string]string{
//		"To":   "+15551234567",
//		"Body": "Hello",
//	})
//
// Responses can be overridden per resource method. Overrides are a shallow
// merge onto the synthesized default, so echoed fields stay intact unless
// explicitly replaced:
//
//	c.ConfigureResponse("messages.create", twindial.Payload{
//		"status":     "failed",
//		"error_code": 21211,
//	})
//
// Each Client owns its own call ledger and response configuration; nothing is
// shared between instances, keeping tests hermetic.
package twindial
