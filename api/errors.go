package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fallback messages for failures the backend did not describe.
const (
	MsgGeneric    = "Something went wrong. Please try again."
	MsgNetwork    = "Unable to reach the pricing server. Check your connection and try again."
	MsgPermission = "You do not have permission to perform this action"
)

// nonFieldKey is the key Django REST framework uses for object-level errors.
const nonFieldKey = "non_field_errors"

// FieldError is the list of messages the backend reported for one field.
type FieldError struct {
	Field    string
	Messages []string
}

// Error is the normalized form of every failed backend call.
// Status is 0 when the request never got an HTTP response.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	// Fields keeps the server's key order so joined messages read the way
	// the backend wrote them.
	Fields []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// FieldMap returns field -> joined messages, skipping object-level errors.
func (e *Error) FieldMap() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == nonFieldKey {
			continue
		}
		out[f.Field] = strings.Join(f.Messages, ", ")
	}
	return out
}

// AsError unwraps err into *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func hasStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == status
}

func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsValidation reports whether err carries server-side field errors.
func IsValidation(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status >= 400 && apiErr.Status < 500 && len(apiErr.FieldMap()) > 0
}

// IsNetwork reports whether the request never produced an HTTP response.
func IsNetwork(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == 0
}

func networkError(method, path string, cause error) *Error {
	return &Error{
		Method:  method,
		Path:    path,
		Message: MsgNetwork,
		Fields:  []FieldError{{Field: nonFieldKey, Messages: []string{cause.Error()}}},
	}
}

// parseError builds an *Error from a non-2xx response body.
// The message comes from "detail", then "message", then the field map
// joined as "field: msg1, msg2; field2: msg".
func parseError(method, path string, status int, body []byte) *Error {
	e := &Error{Method: method, Path: path, Status: status}

	fields, err := decodeOrderedFields(body)
	if err != nil {
		e.Message = fallbackMessage(status)
		return e
	}

	var detail, message string
	for _, f := range fields {
		switch f.Field {
		case "detail":
			detail = strings.Join(f.Messages, " ")
		case "message", "error":
			if message == "" {
				message = strings.Join(f.Messages, " ")
			}
		default:
			e.Fields = append(e.Fields, f)
		}
	}

	switch {
	case detail != "":
		e.Message = detail
	case message != "":
		e.Message = message
	case len(e.Fields) > 0:
		e.Message = joinFieldErrors(e.Fields)
	default:
		e.Message = fallbackMessage(status)
	}
	return e
}

func fallbackMessage(status int) string {
	if status == http.StatusForbidden {
		return MsgPermission
	}
	return MsgGeneric
}

func joinFieldErrors(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs := strings.Join(f.Messages, ", ")
		if f.Field == nonFieldKey {
			parts = append(parts, msgs)
			continue
		}
		parts = append(parts, f.Field+": "+msgs)
	}
	return strings.Join(parts, "; ")
}

// decodeOrderedFields walks a JSON object keeping key order. A bare string or
// array body is reported under nonFieldKey.
func decodeOrderedFields(body []byte) ([]FieldError, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	switch body[0] {
	case '{':
	case '[', '"':
		msgs, err := messagesOf(body)
		if err != nil {
			return nil, err
		}
		return []FieldError{{Field: nonFieldKey, Messages: msgs}}, nil
	default:
		return nil, errors.New("not a JSON error body")
	}
	return decodeObject(body, "")
}

func decodeObject(body []byte, prefix string) ([]FieldError, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var out []FieldError
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			nested, err := decodeObject(trimmed, name)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}

		msgs, err := messagesOf(trimmed)
		if err != nil {
			return nil, err
		}
		if len(msgs) > 0 {
			out = append(out, FieldError{Field: name, Messages: msgs})
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}

// messagesOf turns a string, number, or array of those into plain strings.
func messagesOf(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, v := range list {
			switch val := v.(type) {
			case string:
				msgs = append(msgs, val)
			case nil:
			default:
				b, _ := json.Marshal(val)
				msgs = append(msgs, string(b))
			}
		}
		return msgs, nil
	}

	var other any
	if err := json.Unmarshal(raw, &other); err != nil {
		return nil, err
	}
	if other == nil {
		return nil, nil
	}
	return []string{fmt.Sprint(other)}, nil
}

// describe rewrites well-known statuses into messages naming the resource.
func describe(err error, label, op string) error {
	apiErr, ok := AsError(err)
	if !ok {
		return err
	}
	switch apiErr.Status {
	case http.StatusNotFound:
		apiErr.Message = label + " not found"
	case http.StatusForbidden:
		apiErr.Message = MsgPermission
	case http.StatusConflict:
		if op == http.MethodDelete {
			apiErr.Message = label + " is in use and cannot be deleted"
		} else if apiErr.Message == MsgGeneric {
			apiErr.Message = label + " conflicts with an existing record"
		}
	}
	return apiErr
}
