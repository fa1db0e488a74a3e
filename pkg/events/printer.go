package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Labels printed for each event the sample listens to
var Labels = map[string]string{
	Connect:                 "Listening to events",
	ConnectError:            "Connection error",
	Error:                   "Error",
	Disconnect:              "Socket disconnected",
	DocumentSent:            "Document sent",
	DocumentReceived:        "Document received",
	TransferAcknowledgement: "Transfer acknowledgement",
}

// PrintTo registers a handler for every labelled event that writes one line
// per event to w.
func (s *Subscriber) PrintTo(w io.Writer) *Subscriber {
	for event, label := range Labels {
		event, label := event, label
		s.On(event, func(payload json.RawMessage) {
			fmt.Fprintln(w, FormatEvent(label, event, payload))
		})
	}
	return s
}

// FormatEvent renders "<label> (<event>): <payload>". String payloads are
// printed bare, anything else as compact JSON. Connect is always just the
// label (its payload is the session id), as is any event without a payload.
func FormatEvent(label, event string, payload json.RawMessage) string {
	text := payloadText(payload)
	if event == Connect || text == "" {
		return label
	}
	return fmt.Sprintf("%s (%s): %s", label, event, text)
}

func payloadText(payload json.RawMessage) string {
	if len(payload) == 0 || string(payload) == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(payload, &str); err == nil {
		return str
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return string(payload)
	}
	return buf.String()
}
