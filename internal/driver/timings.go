package driver

import (
	"encoding/json"
	"fmt"

	"reflow/internal/diag"
	"reflow/internal/observ"
	"reflow/internal/source"
)

type timingPayload struct {
	Kind   string `json:"kind"`
	Path   string `json:"path,omitempty"`
	Report observ.Report
}

// MarshalJSON flattens the report into the payload object.
func (p timingPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string               `json:"kind"`
		Path    string               `json:"path,omitempty"`
		TotalMS float64              `json:"total_ms"`
		Stages  []observ.StageReport `json:"stages"`
	}{p.Kind, p.Path, p.Report.TotalMS, p.Report.Stages})
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.Report.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	// тайминги не должны теряться из-за лимита
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}
