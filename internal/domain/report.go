package domain

// ReportPayload is the input record for extraction. Only the report text is
// read; callers may carry extra fields (company metadata etc.) that this
// module ignores.
type ReportPayload struct {
	Report   string `json:"report"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// DefaultFeatureQubits is the default feature vector length, matching the
// four feature qubits of the downstream angle-encoding model.
const DefaultFeatureQubits = 4
