package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Response is the result of an instantiate or execute call: descriptive attributes
// plus the outbound instructions to submit to Osmosis.
type Response struct {
	Attributes []sdk.Attribute                     `json:"attributes"`
	Messages   []MsgStableSwapAdjustScalingFactors `json:"messages"`
}

// NewResponse starts a response tagged with its action.
func NewResponse(action string) *Response {
	return &Response{
		Attributes: []sdk.Attribute{sdk.NewAttribute(AttributeKeyAction, action)},
		Messages:   []MsgStableSwapAdjustScalingFactors{},
	}
}

// AddAttribute appends a key/value attribute.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, sdk.NewAttribute(key, value))
	return r
}

// AddMessage appends an outbound instruction.
func (r *Response) AddMessage(msg MsgStableSwapAdjustScalingFactors) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute returns the first attribute value for key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Event converts the attributes to an sdk event.
func (r *Response) Event() sdk.Event {
	return sdk.NewEvent(EventTypeContract, r.Attributes...)
}
