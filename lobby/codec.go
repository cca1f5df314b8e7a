package lobby

import "encoding/json"

// Encode serializes a frame to its wire text. Encode and Decode are exact
// inverses for the three protocol frame kinds; encoding an UnknownFrame
// fails with ErrorProtocol.
func Encode(f Frame) (string, error) {
	var env envelope
	switch fr := f.(type) {
	case RegisterFrame:
		name := fr.Username
		env = envelope{MessageType: typeRegister, Data: &name}
	case UsersFrame:
		names := fr.Names
		if names == nil {
			names = []string{}
		}
		env = envelope{MessageType: typeUsers, DataArray: names}
	case MessageFrame:
		inner, err := json.Marshal(messagePayload{
			From:      fr.From,
			Message:   fr.Body,
			Timestamp: fr.Timestamp,
		})
		if err != nil {
			return "", WrapError(ErrorProtocol, "encode message payload", err)
		}
		data := string(inner)
		env = envelope{MessageType: typeMessage, Data: &data}
	default:
		return "", NewError(ErrorProtocol, "cannot encode unknown frame kind")
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return "", WrapError(ErrorProtocol, "encode envelope", err)
	}
	return string(raw), nil
}

// Decode parses a raw wire text into a typed frame. Malformed or
// schema-violating input fails with ErrorProtocol; a well-formed envelope
// with an unrecognized messageType decodes to UnknownFrame so that callers
// can skip it without treating it as an error.
func Decode(text string) (Frame, error) {
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, WrapError(ErrorProtocol, "malformed frame", err)
	}

	switch env.MessageType {
	case typeRegister:
		if env.Data == nil {
			return nil, NewError(ErrorProtocol, "register frame missing data")
		}
		return RegisterFrame{Username: *env.Data}, nil
	case typeUsers:
		// The server may omit dataArray entirely; treat that as an
		// empty participant list.
		names := env.DataArray
		if names == nil {
			names = []string{}
		}
		return UsersFrame{Names: names}, nil
	case typeMessage:
		if env.Data == nil {
			return nil, NewError(ErrorProtocol, "message frame missing data")
		}
		var payload messagePayload
		if err := json.Unmarshal([]byte(*env.Data), &payload); err != nil {
			return nil, WrapError(ErrorProtocol, "malformed message payload", err)
		}
		return MessageFrame{
			From:      payload.From,
			Body:      payload.Message,
			Timestamp: payload.Timestamp,
		}, nil
	case "":
		return nil, NewError(ErrorProtocol, "frame missing messageType")
	default:
		return UnknownFrame{Type: env.MessageType}, nil
	}
}
