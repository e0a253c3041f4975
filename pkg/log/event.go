package log

import "time"

// Event represents a codec log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Direction indicates whether the event occurred while decoding
	// wire bytes or encoding a message.
	Direction Direction `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Path locates the attribute within the tree, outermost first,
	// e.g. "LINKINFO/DATA". Empty for message-level events.
	Path string `cbor:"4,keyasint,omitempty"`

	// AttrID is the attribute identifier the event concerns.
	AttrID uint16 `cbor:"5,keyasint,omitempty"`

	// Size is the payload or message size in bytes, where meaningful.
	Size int `cbor:"6,keyasint,omitempty"`

	// Detail carries event-specific context (a resource name, a
	// selector value).
	Detail string `cbor:"7,keyasint,omitempty"`

	// Error is the error text for failure events.
	Error string `cbor:"8,keyasint,omitempty"`
}

// Direction indicates the codec operation in progress.
type Direction uint8

const (
	// DirectionDecode indicates the event occurred while decoding.
	DirectionDecode Direction = 0
	// DirectionEncode indicates the event occurred while encoding.
	DirectionEncode Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionDecode:
		return "DECODE"
	case DirectionEncode:
		return "ENCODE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a whole message was decoded or encoded.
	CategoryMessage Category = 0
	// CategoryFallback indicates an attribute was carried as opaque
	// bytes because no schema entry or selector matched it.
	CategoryFallback Category = 1
	// CategoryTruncation indicates a buffer shorter than a record or
	// field declared.
	CategoryTruncation Category = 2
	// CategoryResource indicates a named resource was opened or
	// released during encoding.
	CategoryResource Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryFallback:
		return "FALLBACK"
	case CategoryTruncation:
		return "TRUNCATION"
	case CategoryResource:
		return "RESOURCE"
	default:
		return "UNKNOWN"
	}
}

// NewMessageEvent returns a message-level event of the given size.
func NewMessageEvent(dir Direction, size int) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: dir,
		Category:  CategoryMessage,
		Size:      size,
	}
}

// NewFallbackEvent returns an event recording an opaque fallback for
// the attribute at path.
func NewFallbackEvent(dir Direction, path string, attrID uint16, size int) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: dir,
		Category:  CategoryFallback,
		Path:      path,
		AttrID:    attrID,
		Size:      size,
	}
}

// NewTruncationEvent returns an event recording a truncated record or
// field at path.
func NewTruncationEvent(dir Direction, path string, err error) Event {
	e := Event{
		Timestamp: time.Now(),
		Direction: dir,
		Category:  CategoryTruncation,
		Path:      path,
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// NewResourceEvent returns an event recording a named-resource open
// during encoding. detail names the resource; err is nil on success.
func NewResourceEvent(path, detail string, err error) Event {
	e := Event{
		Timestamp: time.Now(),
		Direction: DirectionEncode,
		Category:  CategoryResource,
		Path:      path,
		Detail:    detail,
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
