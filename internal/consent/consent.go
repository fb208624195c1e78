package consent

import "time"

// Record is the consent state for one session. The ledger keeps at most
// one record per session id; the latest write wins.
type Record struct {
	SessionID  string    `json:"sessionId"`
	DoctorID   string    `json:"doctorId"`
	PatientRef string    `json:"patientRef"`
	IPHash     string    `json:"ipHash"`
	Timestamp  time.Time `json:"timestamp"`
}

// Export is the compliance-export view of a consent record.
type Export struct {
	Record     Record    `json:"record"`
	ExportedAt time.Time `json:"exportedAt"`
}

type LogConsentInput struct {
	SessionID  string
	DoctorID   string
	PatientRef string
	IPAddress  string
}

// Ledger stores consent records. Has is consulted by the pipeline before
// processing; whether a missing record blocks processing is decided by
// configuration, not by the ledger.
type Ledger interface {
	LogConsent(input LogConsentInput) Record
	Get(sessionID string) (Record, bool)
	Has(sessionID string) bool
	Export(sessionID string) (Export, bool)
}
