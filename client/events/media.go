package events

import "encoding/json"

// KindRenderMedia identifies a rich-media render artifact.
const KindRenderMedia Kind = "render_media"

// RenderMedia carries one rich-media artifact together with its security
// classification fields.
//
// ForeignContent is kept raw: the classifier must distinguish a missing or
// non-boolean value from an explicit false, and a decode default would
// erase that distinction.
type RenderMedia struct {
	Base
	SessionRef
	MediaID        string          `json:"id"`
	ContentType    string          `json:"content_type"`
	Content        string          `json:"content,omitempty"`
	URL            string          `json:"url,omitempty"`
	SentByClass    string          `json:"sent_by_class,omitempty"`
	SentByFunction string          `json:"sent_by_function,omitempty"`
	ForeignContent json.RawMessage `json:"foreign_content"`
}
