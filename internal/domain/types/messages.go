package types

// MessageType tags an Olm wire message.
type MessageType int

const (
	// MessageTypePreKey carries the material a recipient needs to create an
	// inbound session.
	MessageTypePreKey MessageType = 0
	// MessageTypeNormal continues an established session.
	MessageTypeNormal MessageType = 1
)

// String returns a human-readable name for the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypePreKey:
		return "pre-key"
	case MessageTypeNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// OlmMessage is the JSON envelope exchanged with the host.
type OlmMessage struct {
	Type MessageType `json:"type"`
	Body string      `json:"body"`
}

// PreKeyMessage is the decoded body of a pre-key OlmMessage.
type PreKeyMessage struct {
	OneTimeKey  X25519Public
	BaseKey     X25519Public
	IdentityKey X25519Public
	Message     NormalMessage
}

// NormalMessage is the decoded body of a normal OlmMessage.
type NormalMessage struct {
	Header     RatchetHeader
	Ciphertext []byte
}
