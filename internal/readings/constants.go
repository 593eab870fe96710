// internal/readings/constants.go
package readings

// Status values. These strings are part of the API payload and MUST NOT
// change independently of consumers.

// ---- METER-LEVEL STATUS ----

// StatusOK: every register read succeeded.
const StatusOK = "OK"

// StatusPartial: the session was established but at least one register
// failed to read or decode.
const StatusPartial = "PARTIAL"

// StatusFailed: the session could not be established; no registers were
// attempted.
const StatusFailed = "FAILED"

// ---- REGISTER-LEVEL STATUS ----

// StatusError marks a single failed register entry. Successful entries
// reuse StatusOK.
const StatusError = "ERROR"

// ---- MARKERS ----

// ValueNA is the rendered value of a failed register entry.
const ValueNA = "N/A"
