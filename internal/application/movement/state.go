package movement

// State estado de una transacción dentro del flujo.
//
//	RECEIVED → LOCALLY_VALIDATED → [SAP_ATTEMPTED: {SAP_OK | SAP_FAILED_LOGGED}] → LOCALLY_COMMITTED → RESPONDED
//
// REJECTED es terminal y solo ocurre por validación o confirmación local.
type State string

const (
	StateReceived         State = "RECEIVED"
	StateLocallyValidated State = "LOCALLY_VALIDATED"
	StateSAPAttempted     State = "SAP_ATTEMPTED"
	StateSAPOk            State = "SAP_OK"
	StateSAPFailedLogged  State = "SAP_FAILED_LOGGED"
	StateLocallyCommitted State = "LOCALLY_COMMITTED"
	StateRejected         State = "REJECTED"
	StateResponded        State = "RESPONDED"
)
