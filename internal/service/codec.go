package service

import "encoding/json"

// jsonCodec carries the plain Go message structs of this package over
// Connect. It replaces connect's built-in "json" codec, which only accepts
// protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
