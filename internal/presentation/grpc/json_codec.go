package grpc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const jsonSubtype = "json"

func init() {
	encoding.RegisterCodec(pricingCodec{})
}

// pricingCodec carries the pricing messages as JSON under content-subtype
// "json". Decoding rejects unknown fields and trailing data.
type pricingCodec struct{}

func (pricingCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (pricingCodec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	if dec.More() {
		return fmt.Errorf("decode %T: trailing data", v)
	}
	return nil
}

func (pricingCodec) Name() string {
	return jsonSubtype
}
