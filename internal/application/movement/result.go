package movement

import (
	"strings"

	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// Result respuesta compuesta de una transacción. Status 'T' aunque SAP haya fallado,
// siempre que la parte local se haya completado; 'F' solo por rechazo local.
type Result struct {
	Status            string
	Message           string
	ErrorInSAP        bool
	PartialFailures   bool
	SapMessage        string
	ErrorMessages     []string
	MaterialDocuments []string
	States            []State
	Data              map[string]any
}

// OK indica Status 'T'.
func (r Result) OK() bool { return r.Status == storedproc.StatusOK }

const defaultOKMessage = "Transacción registrada correctamente"

// compose arma la respuesta final con el resultado local y el de SAP.
func compose(v Validation, posting Posting, c Commit, states []State) Result {
	res := Result{Status: storedproc.StatusOK, States: states}
	res.Data = mergeData(v.Data, c.Data)

	res.Message = c.Message
	if res.Message == "" {
		res.Message = v.Message
	}
	if res.Message == "" {
		res.Message = defaultOKMessage
	}

	var sapMessages []string
	okBatches := 0
	for _, b := range posting.Batches {
		if b.Outcome.Succeeded() {
			okBatches++
			res.MaterialDocuments = append(res.MaterialDocuments, b.Outcome.MaterialDocument)
			continue
		}
		sapMessages = appendUnique(sapMessages, b.Outcome.ErrorMessage)
	}
	if len(sapMessages) > 0 {
		res.ErrorInSAP = true
		res.SapMessage = strings.Join(sapMessages, "; ")
		res.ErrorMessages = append(res.ErrorMessages, sapMessages...)
		res.Message += ". Error en SAP: " + res.SapMessage
		if okBatches > 0 {
			res.PartialFailures = true
		}
	}
	if len(c.Failures) > 0 {
		res.PartialFailures = true
		res.ErrorMessages = append(res.ErrorMessages, c.Failures...)
	}
	return res
}

func rejected(message string, states []State) Result {
	if message == "" {
		message = "Operación rechazada"
	}
	return Result{Status: storedproc.StatusRejected, Message: message, States: states}
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		s = "SAP no devolvió documento de material"
	}
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}

func mergeData(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
