package lobby

const (
	typeRegister = "register"
	typeUsers    = "users"
	typeMessage  = "message"
)

// Frame is one wire message exchanged with the chat server. The protocol
// defines exactly three kinds; anything else decodes to UnknownFrame.
type Frame interface {
	frameType() string
}

// RegisterFrame announces the local username to the server. It is the first
// frame a session ever sends.
type RegisterFrame struct {
	Username string
}

// UsersFrame carries the full participant list. Each one replaces the
// previous roster wholesale.
type UsersFrame struct {
	Names []string
}

// MessageFrame is a single chat message. A nil Timestamp means the message
// was just received and carries no server time.
type MessageFrame struct {
	From      string
	Body      string
	Timestamp *int64
}

// UnknownFrame is a syntactically valid frame whose messageType the client
// does not recognize. Handlers ignore it without error.
type UnknownFrame struct {
	Type string
}

func (RegisterFrame) frameType() string  { return typeRegister }
func (UsersFrame) frameType() string     { return typeUsers }
func (MessageFrame) frameType() string   { return typeMessage }
func (f UnknownFrame) frameType() string { return f.Type }

// envelope is the JSON shape on the wire. Field names are fixed for
// interop with the server.
type envelope struct {
	MessageType string   `json:"messageType"`
	DataArray   []string `json:"dataArray,omitempty"`
	Data        *string  `json:"data,omitempty"`
}

// messagePayload is the inner JSON object carried in envelope.Data for
// "message" frames.
type messagePayload struct {
	From      string `json:"from"`
	Message   string `json:"message"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}
