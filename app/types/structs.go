package types

import (
	"encoding/json"

	"github.com/vibast-solutions/ms-go-bridal/app/search"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewSearchPlansRequestFromStruct reads the same parameter names as the HTTP
// query string, legacy aliases included. Non-string values are ignored.
func NewSearchPlansRequestFromStruct(in *structpb.Struct) *SearchPlansRequest {
	return NewSearchPlansRequest(search.ParamsFromLookup(structLookup(in)))
}

func NewGetPlanRequestFromStruct(in *structpb.Struct) *GetPlanRequest {
	return &GetPlanRequest{Id: structLookup(in)("id")}
}

// ToStruct converts a JSON-serialisable response into a Struct message.
func ToStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func structLookup(in *structpb.Struct) func(string) string {
	return func(key string) string {
		if in == nil {
			return ""
		}
		value, ok := in.GetFields()[key]
		if !ok {
			return ""
		}
		return value.GetStringValue()
	}
}
