//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

// Wire names of the node data fields. Patches passed to Store.UpdateNodeData
// and the maps crossing the serialization boundary are keyed by these names.
const (
	FieldText              = "text"
	FieldLabel             = "label"
	FieldImageURL          = "imageUrl"
	FieldVideoURL          = "videoUrl"
	FieldCroppedImage      = "croppedImage"
	FieldExtractedImageURL = "extractedImageUrl"
	FieldResponse          = "response"
	FieldModel             = "model"
	FieldTimestamp         = "timestamp"
	FieldIsLoading         = "isLoading"
	FieldX                 = "x"
	FieldY                 = "y"
	FieldWidth             = "width"
	FieldHeight            = "height"
)

// NodeData is the tagged union of per-type node payloads.
//
// Implementations are immutable: Merge returns a fresh value and never
// mutates the receiver, which is what makes shallow snapshot copies in the
// Store safe. Field and Map use the wire names above. Keys a variant does not
// declare are dropped by Merge; only GenericData, the fallback for node types
// this engine does not know, keeps arbitrary keys.
type NodeData interface {
	// Kind returns the node type this payload belongs to.
	Kind() NodeType
	// Field looks up a field by wire name.
	Field(name string) (any, bool)
	// Merge applies a patch map copy-on-write and returns the merged payload.
	Merge(patch map[string]any) NodeData
	// Map renders the payload as a generic mapping for serialization.
	Map() map[string]any
}

// DataForType builds the typed payload variant for a node type from a
// generic field mapping. Unknown node types fall back to GenericData so a
// document produced by a newer engine still loads.
func DataForType(nt NodeType, fields map[string]any) NodeData {
	var d NodeData
	switch nt {
	case NodeTypeText:
		d = TextData{}
	case NodeTypeImage:
		d = ImageData{}
	case NodeTypeVideo:
		d = VideoData{}
	case NodeTypeCrop:
		d = CropData{}
	case NodeTypeExtract:
		d = ExtractData{}
	case NodeTypeLLM:
		d = LLMData{}
	default:
		d = GenericData{}
	}
	if len(fields) == 0 {
		return d
	}
	return d.Merge(fields)
}

// TextData is the payload of a text node.
type TextData struct {
	Text string
}

// Kind implements NodeData.
func (d TextData) Kind() NodeType { return NodeTypeText }

// Field implements NodeData.
func (d TextData) Field(name string) (any, bool) {
	if name == FieldText && d.Text != "" {
		return d.Text, true
	}
	return nil, false
}

// Merge implements NodeData.
func (d TextData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldText]; ok {
		out.Text = asString(v)
	}
	return out
}

// Map implements NodeData.
func (d TextData) Map() map[string]any {
	m := map[string]any{}
	if d.Text != "" {
		m[FieldText] = d.Text
	}
	return m
}

// ImageData is the payload of an image source node.
type ImageData struct {
	ImageURL string
	Label    string
}

// Kind implements NodeData.
func (d ImageData) Kind() NodeType { return NodeTypeImage }

// Field implements NodeData.
func (d ImageData) Field(name string) (any, bool) {
	switch name {
	case FieldImageURL:
		if d.ImageURL != "" {
			return d.ImageURL, true
		}
	case FieldLabel:
		if d.Label != "" {
			return d.Label, true
		}
	}
	return nil, false
}

// Merge implements NodeData.
func (d ImageData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldImageURL]; ok {
		out.ImageURL = asString(v)
	}
	if v, ok := patch[FieldLabel]; ok {
		out.Label = asString(v)
	}
	return out
}

// Map implements NodeData.
func (d ImageData) Map() map[string]any {
	m := map[string]any{}
	if d.ImageURL != "" {
		m[FieldImageURL] = d.ImageURL
	}
	if d.Label != "" {
		m[FieldLabel] = d.Label
	}
	return m
}

// VideoData is the payload of a video source node.
type VideoData struct {
	VideoURL string
	Label    string
}

// Kind implements NodeData.
func (d VideoData) Kind() NodeType { return NodeTypeVideo }

// Field implements NodeData.
func (d VideoData) Field(name string) (any, bool) {
	switch name {
	case FieldVideoURL:
		if d.VideoURL != "" {
			return d.VideoURL, true
		}
	case FieldLabel:
		if d.Label != "" {
			return d.Label, true
		}
	}
	return nil, false
}

// Merge implements NodeData.
func (d VideoData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldVideoURL]; ok {
		out.VideoURL = asString(v)
	}
	if v, ok := patch[FieldLabel]; ok {
		out.Label = asString(v)
	}
	return out
}

// Map implements NodeData.
func (d VideoData) Map() map[string]any {
	m := map[string]any{}
	if d.VideoURL != "" {
		m[FieldVideoURL] = d.VideoURL
	}
	if d.Label != "" {
		m[FieldLabel] = d.Label
	}
	return m
}

// CropData is the payload of an image cropper node. The box is expressed in
// percent of the source image.
type CropData struct {
	X            float64
	Y            float64
	Width        float64
	Height       float64
	CroppedImage string
	IsLoading    bool
}

// Kind implements NodeData.
func (d CropData) Kind() NodeType { return NodeTypeCrop }

// Field implements NodeData.
func (d CropData) Field(name string) (any, bool) {
	switch name {
	case FieldX:
		return d.X, true
	case FieldY:
		return d.Y, true
	case FieldWidth:
		return d.Width, true
	case FieldHeight:
		return d.Height, true
	case FieldCroppedImage:
		if d.CroppedImage != "" {
			return d.CroppedImage, true
		}
	case FieldIsLoading:
		return d.IsLoading, true
	}
	return nil, false
}

// Merge implements NodeData.
func (d CropData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldX]; ok {
		out.X = asFloat(v)
	}
	if v, ok := patch[FieldY]; ok {
		out.Y = asFloat(v)
	}
	if v, ok := patch[FieldWidth]; ok {
		out.Width = asFloat(v)
	}
	if v, ok := patch[FieldHeight]; ok {
		out.Height = asFloat(v)
	}
	if v, ok := patch[FieldCroppedImage]; ok {
		out.CroppedImage = asString(v)
	}
	if v, ok := patch[FieldIsLoading]; ok {
		out.IsLoading = asBool(v)
	}
	return out
}

// Map implements NodeData.
func (d CropData) Map() map[string]any {
	m := map[string]any{}
	if d.X != 0 {
		m[FieldX] = d.X
	}
	if d.Y != 0 {
		m[FieldY] = d.Y
	}
	if d.Width != 0 {
		m[FieldWidth] = d.Width
	}
	if d.Height != 0 {
		m[FieldHeight] = d.Height
	}
	if d.CroppedImage != "" {
		m[FieldCroppedImage] = d.CroppedImage
	}
	if d.IsLoading {
		m[FieldIsLoading] = true
	}
	return m
}

// ExtractData is the payload of a video frame-extractor node. Timestamp is a
// free-form seek expression such as "5" or "00:00:05".
type ExtractData struct {
	Timestamp         string
	ExtractedImageURL string
	IsLoading         bool
}

// Kind implements NodeData.
func (d ExtractData) Kind() NodeType { return NodeTypeExtract }

// Field implements NodeData.
func (d ExtractData) Field(name string) (any, bool) {
	switch name {
	case FieldTimestamp:
		if d.Timestamp != "" {
			return d.Timestamp, true
		}
	case FieldExtractedImageURL:
		if d.ExtractedImageURL != "" {
			return d.ExtractedImageURL, true
		}
	case FieldIsLoading:
		return d.IsLoading, true
	}
	return nil, false
}

// Merge implements NodeData.
func (d ExtractData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldTimestamp]; ok {
		out.Timestamp = asString(v)
	}
	if v, ok := patch[FieldExtractedImageURL]; ok {
		out.ExtractedImageURL = asString(v)
	}
	if v, ok := patch[FieldIsLoading]; ok {
		out.IsLoading = asBool(v)
	}
	return out
}

// Map implements NodeData.
func (d ExtractData) Map() map[string]any {
	m := map[string]any{}
	if d.Timestamp != "" {
		m[FieldTimestamp] = d.Timestamp
	}
	if d.ExtractedImageURL != "" {
		m[FieldExtractedImageURL] = d.ExtractedImageURL
	}
	if d.IsLoading {
		m[FieldIsLoading] = true
	}
	return m
}

// LLMData is the payload of a generative-model node.
type LLMData struct {
	Model     string
	Response  string
	IsLoading bool
}

// Kind implements NodeData.
func (d LLMData) Kind() NodeType { return NodeTypeLLM }

// Field implements NodeData.
func (d LLMData) Field(name string) (any, bool) {
	switch name {
	case FieldModel:
		if d.Model != "" {
			return d.Model, true
		}
	case FieldResponse:
		if d.Response != "" {
			return d.Response, true
		}
	case FieldIsLoading:
		return d.IsLoading, true
	}
	return nil, false
}

// Merge implements NodeData.
func (d LLMData) Merge(patch map[string]any) NodeData {
	out := d
	if v, ok := patch[FieldModel]; ok {
		out.Model = asString(v)
	}
	if v, ok := patch[FieldResponse]; ok {
		out.Response = asString(v)
	}
	if v, ok := patch[FieldIsLoading]; ok {
		out.IsLoading = asBool(v)
	}
	return out
}

// Map implements NodeData.
func (d LLMData) Map() map[string]any {
	m := map[string]any{}
	if d.Model != "" {
		m[FieldModel] = d.Model
	}
	if d.Response != "" {
		m[FieldResponse] = d.Response
	}
	if d.IsLoading {
		m[FieldIsLoading] = true
	}
	return m
}

// GenericData carries the payload of a node type this engine does not know.
// It exists only so foreign documents survive load/save; the resolver can
// still read string fields out of it by name.
type GenericData map[string]any

// Kind implements NodeData.
func (d GenericData) Kind() NodeType { return "" }

// Field implements NodeData.
func (d GenericData) Field(name string) (any, bool) {
	v, ok := d[name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// Merge implements NodeData.
func (d GenericData) Merge(patch map[string]any) NodeData {
	out := make(GenericData, len(d)+len(patch))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Map implements NodeData.
func (d GenericData) Map() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
