package api

import (
	"github.com/mitchellh/mapstructure"
)

// Envelope is the uniform wrapper every backend response is normalized into.
// Transport failures and unreadable bodies are reported through the same
// shape, so callers never see a raw transport error.
type Envelope struct {
	Success    bool        `json:"success"`
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

type Pagination struct {
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// DecodeData maps the untyped data payload onto out using json field names.
func (e Envelope) DecodeData(out interface{}) error {
	if e.Data == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(e.Data)
}
