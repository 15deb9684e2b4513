package trainpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content subtype under which this package's codec is
// registered. The client stub selects it on every call; servers pick it up
// automatically from the request's content-type.
const CodecName = "mltrain-json"

func init() {
	encoding.RegisterCodec(codec{})
}

// codec marshals the hand-maintained wire structs as JSON. Values that
// implement proto.Message use proto wire encoding, so generated message types
// can share a connection with this package's types.
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal %T: %w", CodecName, v, err)
	}
	return b, nil
}

func (codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: unmarshal into %T: %w", CodecName, v, err)
	}
	return nil
}

func (codec) Name() string { return CodecName }
