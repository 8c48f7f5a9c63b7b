package scene

import (
	"encoding/json"
	"fmt"
)

// MarshalElements encodes elements as a JSON array. Each concrete type
// carries its kind tag, so the array round-trips through
// UnmarshalElements.
func MarshalElements(els []Element) ([]byte, error) {
	return json.Marshal(els)
}

// UnmarshalElements decodes a JSON array of kind-tagged elements.
func UnmarshalElements(data []byte) ([]Element, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode element array: %w", err)
	}

	els := make([]Element, 0, len(raws))
	for i, raw := range raws {
		el, err := unmarshalElement(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		els = append(els, el)
	}
	return els, nil
}

func unmarshalElement(raw json.RawMessage) (Element, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("probe kind: %w", err)
	}

	var el Element
	switch probe.Kind {
	case KindRectangle, KindDiamond, KindEllipse:
		el = &Shape{}
	case KindArrow, KindLine:
		el = &Line{}
	case KindPencil:
		el = &Stroke{}
	case KindPath:
		el = &Path{}
	case KindText:
		el = &Text{}
	case KindImage:
		el = &Image{}
	case KindLongPosition, KindShortPosition:
		el = &Position{}
	default:
		return nil, fmt.Errorf("unknown element kind %q", probe.Kind)
	}

	if err := json.Unmarshal(raw, el); err != nil {
		return nil, fmt.Errorf("decode %s: %w", probe.Kind, err)
	}
	return el, nil
}
