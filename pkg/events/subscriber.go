// Package events subscribes to the document store's event stream. The store
// publishes over Socket.IO, so the subscriber speaks just enough of the
// Engine.IO v4 text framing on top of a plain WebSocket to receive named
// events. There is no reconnection and no backoff.
package events

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Event names the store emits, plus the connection level ones.
const (
	Connect                 = "connect"
	ConnectError            = "connect_error"
	Error                   = "error"
	Disconnect              = "disconnect"
	DocumentSent            = "document_sent"
	DocumentReceived        = "document_received"
	TransferAcknowledgement = "transfer_acknowledgement"
)

// Engine.IO packet types
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
)

// Socket.IO packet types, carried inside an Engine.IO message
const (
	sioConnect      = '0'
	sioDisconnect   = '1'
	sioEvent        = '2'
	sioConnectError = '4'
)

// Handler receives the raw JSON payload of an event. Connection errors are
// delivered as a JSON string.
type Handler func(payload json.RawMessage)

type Subscriber struct {
	endpoint string
	user     string
	password string
	logger   logrus.FieldLogger
	dialer   *websocket.Dialer
	handlers map[string]Handler
}

func NewSubscriber(endpoint, user, password string, logger logrus.FieldLogger) *Subscriber {
	return &Subscriber{
		endpoint: endpoint,
		user:     user,
		password: password,
		logger:   logger,
		dialer:   websocket.DefaultDialer,
		handlers: map[string]Handler{},
	}
}

// On registers h for event, replacing any earlier handler.
func (s *Subscriber) On(event string, h Handler) *Subscriber {
	s.handlers[event] = h
	return s
}

// AuthHeader is the value sent in the Authorization header on connect.
func (s *Subscriber) AuthHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(s.user+":"+s.password))
}

// SocketURL turns the configured endpoint into the WebSocket transport URL.
func SocketURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrap(err, "Invalid socket endpoint")
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.Errorf("unsupported socket endpoint scheme %q", u.Scheme)
	}
	if !strings.Contains(u.Path, "socket.io") {
		u.Path = strings.TrimRight(u.Path, "/") + "/socket.io/"
	}
	q := u.Query()
	q.Set("EIO", "4")
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Run connects and dispatches events until the server closes the session,
// the connection fails, or ctx is cancelled. A failed dial is reported to the
// connect_error handler and a failed read to the error handler; both are also
// returned.
func (s *Subscriber) Run(ctx context.Context) error {
	target, err := SocketURL(s.endpoint)
	if err != nil {
		s.emitError(ConnectError, err)
		return err
	}

	header := http.Header{}
	header.Set("Authorization", s.AuthHeader())

	s.logger.Debugf("connecting to %s", target)
	conn, _, err := s.dialer.DialContext(ctx, target, header)
	if err != nil {
		s.emitError(ConnectError, err)
		return errors.Wrap(err, "Failed to connect")
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.emitError(Error, err)
			return err
		}
		s.logger.Debugf("frame %s", frame)

		finished, err := s.handleFrame(conn, frame)
		if err != nil {
			s.emitError(Error, err)
			return err
		}
		if finished {
			s.logger.Debug("session closed by server")
			return nil
		}
	}
}

// handleFrame reacts to one Engine.IO packet. It reports true once the
// session is over.
func (s *Subscriber) handleFrame(conn *websocket.Conn, frame []byte) (bool, error) {
	if len(frame) == 0 {
		return false, nil
	}
	switch frame[0] {
	case eioOpen:
		return false, conn.WriteMessage(websocket.TextMessage, []byte{eioMessage, sioConnect})
	case eioClose:
		s.emitReason(Disconnect, "transport close")
		return true, nil
	case eioPing:
		reply := append([]byte{eioPong}, frame[1:]...)
		return false, conn.WriteMessage(websocket.TextMessage, reply)
	case eioPong:
		return false, nil
	case eioMessage:
		return s.handlePacket(frame[1:])
	}
	s.logger.Debugf("ignoring engine packet type %q", frame[0])
	return false, nil
}

func (s *Subscriber) handlePacket(packet []byte) (bool, error) {
	if len(packet) == 0 {
		return false, nil
	}
	body := skipNamespace(packet[1:])
	switch packet[0] {
	case sioConnect:
		s.emit(Connect, rawOrNull(body))
	case sioDisconnect:
		s.emitReason(Disconnect, "io server disconnect")
		return true, nil
	case sioConnectError:
		s.emit(ConnectError, rawOrNull(body))
	case sioEvent:
		name, payload, err := decodeEvent(body)
		if err != nil {
			return false, err
		}
		s.emit(name, payload)
	default:
		s.logger.Debugf("ignoring socket packet type %q", packet[0])
	}
	return false, nil
}

func (s *Subscriber) emit(event string, payload json.RawMessage) {
	h, ok := s.handlers[event]
	if !ok {
		s.logger.Debugf("no handler for %s", event)
		return
	}
	h(payload)
}

func (s *Subscriber) emitError(event string, err error) {
	s.emitReason(event, err.Error())
}

func (s *Subscriber) emitReason(event, reason string) {
	msg, _ := json.Marshal(reason)
	s.emit(event, msg)
}

// skipNamespace drops an optional "/nsp," prefix and ack id from a packet
// body, leaving the JSON data.
func skipNamespace(body []byte) []byte {
	if len(body) > 0 && body[0] == '/' {
		if i := bytes.IndexByte(body, ','); i >= 0 {
			body = body[i+1:]
		} else {
			body = nil
		}
	}
	for len(body) > 0 && body[0] >= '0' && body[0] <= '9' {
		body = body[1:]
	}
	return body
}

// decodeEvent splits ["name", payload, ...] into its name and first argument.
func decodeEvent(body []byte) (string, json.RawMessage, error) {
	var args []json.RawMessage
	if err := json.Unmarshal(body, &args); err != nil {
		return "", nil, errors.Wrap(err, "Malformed event packet")
	}
	if len(args) == 0 {
		return "", nil, errors.New("event packet without a name")
	}
	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return "", nil, errors.Wrap(err, "Malformed event name")
	}
	if len(args) < 2 {
		return name, json.RawMessage("null"), nil
	}
	return name, args[1], nil
}

func rawOrNull(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(body)
}
