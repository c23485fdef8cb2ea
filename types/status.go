package types

import (
	"errors"
	"fmt"
)

// Status is a native driver status code.
//
// Zero means success. Any other value packs an error source in the high
// byte and a source-specific code in the low bits, so server failures carry
// the CQL protocol error code unchanged.
type Status uint32

// StatusSource identifies the subsystem that reported a failure.
type StatusSource uint8

// Status sources.
const (
	SourceNone        StatusSource = 0
	SourceLib         StatusSource = 1
	SourceServer      StatusSource = 2
	SourceSSL         StatusSource = 3
	SourceCompression StatusSource = 4
)

// String returns the source name.
func (s StatusSource) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceLib:
		return "lib"
	case SourceServer:
		return "server"
	case SourceSSL:
		return "ssl"
	case SourceCompression:
		return "compression"
	}

	return fmt.Sprintf("source(%d)", uint8(s))
}

// MakeStatus builds a status from a source and a source-specific code.
func MakeStatus(source StatusSource, code uint32) Status {
	return Status(uint32(source)<<24 | code&0xFFFFFF)
}

// StatusOK is the success status.
const StatusOK Status = 0

// Library (client-side) statuses.
const (
	LibBadParams                 = Status(uint32(SourceLib)<<24 | 1)
	LibNoStreams                 = Status(uint32(SourceLib)<<24 | 2)
	LibUnableToInit              = Status(uint32(SourceLib)<<24 | 3)
	LibMessageEncode             = Status(uint32(SourceLib)<<24 | 4)
	LibHostResolution            = Status(uint32(SourceLib)<<24 | 5)
	LibUnexpectedResponse        = Status(uint32(SourceLib)<<24 | 6)
	LibRequestQueueFull          = Status(uint32(SourceLib)<<24 | 7)
	LibNoAvailableIOThread       = Status(uint32(SourceLib)<<24 | 8)
	LibWriteError                = Status(uint32(SourceLib)<<24 | 9)
	LibNoHostsAvailable          = Status(uint32(SourceLib)<<24 | 10)
	LibIndexOutOfBounds          = Status(uint32(SourceLib)<<24 | 11)
	LibInvalidItemCount          = Status(uint32(SourceLib)<<24 | 12)
	LibInvalidValueType          = Status(uint32(SourceLib)<<24 | 13)
	LibRequestTimedOut           = Status(uint32(SourceLib)<<24 | 14)
	LibUnableToSetKeyspace       = Status(uint32(SourceLib)<<24 | 15)
	LibCallbackAlreadySet        = Status(uint32(SourceLib)<<24 | 16)
	LibInvalidStatementType      = Status(uint32(SourceLib)<<24 | 17)
	LibNameDoesNotExist          = Status(uint32(SourceLib)<<24 | 18)
	LibUnableToDetermineProtocol = Status(uint32(SourceLib)<<24 | 19)
	LibNullValue                 = Status(uint32(SourceLib)<<24 | 20)
	LibNotImplemented            = Status(uint32(SourceLib)<<24 | 21)
	LibUnableToConnect           = Status(uint32(SourceLib)<<24 | 22)
	LibUnableToClose             = Status(uint32(SourceLib)<<24 | 23)
	LibNoPagingState             = Status(uint32(SourceLib)<<24 | 24)
	LibParameterUnset            = Status(uint32(SourceLib)<<24 | 25)
	LibInvalidErrorResultType    = Status(uint32(SourceLib)<<24 | 26)
	LibInvalidFutureType         = Status(uint32(SourceLib)<<24 | 27)
	LibInternalError             = Status(uint32(SourceLib)<<24 | 28)
)

// Server statuses. The low bits are the CQL protocol error codes.
const (
	ServerServerError     = Status(uint32(SourceServer)<<24 | 0x0000)
	ServerProtocolError   = Status(uint32(SourceServer)<<24 | 0x000A)
	ServerBadCredentials  = Status(uint32(SourceServer)<<24 | 0x0100)
	ServerUnavailable     = Status(uint32(SourceServer)<<24 | 0x1000)
	ServerOverloaded      = Status(uint32(SourceServer)<<24 | 0x1001)
	ServerIsBootstrapping = Status(uint32(SourceServer)<<24 | 0x1002)
	ServerTruncateError   = Status(uint32(SourceServer)<<24 | 0x1003)
	ServerWriteTimeout    = Status(uint32(SourceServer)<<24 | 0x1100)
	ServerReadTimeout     = Status(uint32(SourceServer)<<24 | 0x1200)
	ServerReadFailure     = Status(uint32(SourceServer)<<24 | 0x1300)
	ServerFunctionFailure = Status(uint32(SourceServer)<<24 | 0x1400)
	ServerWriteFailure    = Status(uint32(SourceServer)<<24 | 0x1500)
	ServerSyntaxError     = Status(uint32(SourceServer)<<24 | 0x2000)
	ServerUnauthorized    = Status(uint32(SourceServer)<<24 | 0x2100)
	ServerInvalidQuery    = Status(uint32(SourceServer)<<24 | 0x2200)
	ServerConfigError     = Status(uint32(SourceServer)<<24 | 0x2300)
	ServerAlreadyExists   = Status(uint32(SourceServer)<<24 | 0x2400)
	ServerUnprepared      = Status(uint32(SourceServer)<<24 | 0x2500)
)

// SSL statuses.
const (
	SSLInvalidCert       = Status(uint32(SourceSSL)<<24 | 1)
	SSLUnableToLoadCert  = Status(uint32(SourceSSL)<<24 | 2)
	SSLInvalidPrivateKey = Status(uint32(SourceSSL)<<24 | 3)
	SSLNoPeerCert        = Status(uint32(SourceSSL)<<24 | 4)
	SSLInvalidPeerCert   = Status(uint32(SourceSSL)<<24 | 5)
	SSLIdentityMismatch  = Status(uint32(SourceSSL)<<24 | 6)
	SSLProtocolError     = Status(uint32(SourceSSL)<<24 | 7)
	SSLClosed            = Status(uint32(SourceSSL)<<24 | 8)
)

var statusNames = map[Status]string{
	StatusOK: "OK",

	LibBadParams:                 "LIB_BAD_PARAMS",
	LibNoStreams:                 "LIB_NO_STREAMS",
	LibUnableToInit:              "LIB_UNABLE_TO_INIT",
	LibMessageEncode:             "LIB_MESSAGE_ENCODE",
	LibHostResolution:            "LIB_HOST_RESOLUTION",
	LibUnexpectedResponse:        "LIB_UNEXPECTED_RESPONSE",
	LibRequestQueueFull:          "LIB_REQUEST_QUEUE_FULL",
	LibNoAvailableIOThread:       "LIB_NO_AVAILABLE_IO_THREAD",
	LibWriteError:                "LIB_WRITE_ERROR",
	LibNoHostsAvailable:          "LIB_NO_HOSTS_AVAILABLE",
	LibIndexOutOfBounds:          "LIB_INDEX_OUT_OF_BOUNDS",
	LibInvalidItemCount:          "LIB_INVALID_ITEM_COUNT",
	LibInvalidValueType:          "LIB_INVALID_VALUE_TYPE",
	LibRequestTimedOut:           "LIB_REQUEST_TIMED_OUT",
	LibUnableToSetKeyspace:       "LIB_UNABLE_TO_SET_KEYSPACE",
	LibCallbackAlreadySet:        "LIB_CALLBACK_ALREADY_SET",
	LibInvalidStatementType:      "LIB_INVALID_STATEMENT_TYPE",
	LibNameDoesNotExist:          "LIB_NAME_DOES_NOT_EXIST",
	LibUnableToDetermineProtocol: "LIB_UNABLE_TO_DETERMINE_PROTOCOL",
	LibNullValue:                 "LIB_NULL_VALUE",
	LibNotImplemented:            "LIB_NOT_IMPLEMENTED",
	LibUnableToConnect:           "LIB_UNABLE_TO_CONNECT",
	LibUnableToClose:             "LIB_UNABLE_TO_CLOSE",
	LibNoPagingState:             "LIB_NO_PAGING_STATE",
	LibParameterUnset:            "LIB_PARAMETER_UNSET",
	LibInvalidErrorResultType:    "LIB_INVALID_ERROR_RESULT_TYPE",
	LibInvalidFutureType:         "LIB_INVALID_FUTURE_TYPE",
	LibInternalError:             "LIB_INTERNAL_ERROR",

	ServerServerError:     "SERVER_SERVER_ERROR",
	ServerProtocolError:   "SERVER_PROTOCOL_ERROR",
	ServerBadCredentials:  "SERVER_BAD_CREDENTIALS",
	ServerUnavailable:     "SERVER_UNAVAILABLE",
	ServerOverloaded:      "SERVER_OVERLOADED",
	ServerIsBootstrapping: "SERVER_IS_BOOTSTRAPPING",
	ServerTruncateError:   "SERVER_TRUNCATE_ERROR",
	ServerWriteTimeout:    "SERVER_WRITE_TIMEOUT",
	ServerReadTimeout:     "SERVER_READ_TIMEOUT",
	ServerReadFailure:     "SERVER_READ_FAILURE",
	ServerFunctionFailure: "SERVER_FUNCTION_FAILURE",
	ServerWriteFailure:    "SERVER_WRITE_FAILURE",
	ServerSyntaxError:     "SERVER_SYNTAX_ERROR",
	ServerUnauthorized:    "SERVER_UNAUTHORIZED",
	ServerInvalidQuery:    "SERVER_INVALID_QUERY",
	ServerConfigError:     "SERVER_CONFIG_ERROR",
	ServerAlreadyExists:   "SERVER_ALREADY_EXISTS",
	ServerUnprepared:      "SERVER_UNPREPARED",

	SSLInvalidCert:       "SSL_INVALID_CERT",
	SSLUnableToLoadCert:  "SSL_UNABLE_TO_LOAD_CERT",
	SSLInvalidPrivateKey: "SSL_INVALID_PRIVATE_KEY",
	SSLNoPeerCert:        "SSL_NO_PEER_CERT",
	SSLInvalidPeerCert:   "SSL_INVALID_PEER_CERT",
	SSLIdentityMismatch:  "SSL_IDENTITY_MISMATCH",
	SSLProtocolError:     "SSL_PROTOCOL_ERROR",
	SSLClosed:            "SSL_CLOSED",
}

// Source returns the subsystem that reported the status.
func (s Status) Source() StatusSource {
	return StatusSource(uint32(s) >> 24)
}

// Code returns the source-specific code.
func (s Status) Code() uint32 {
	return uint32(s) & 0xFFFFFF
}

// OK reports whether s is the success status.
func (s Status) OK() bool {
	return s == StatusOK
}

// String returns the symbolic name, or source and code for unknown values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("%s(0x%04X)", s.Source(), s.Code())
}

// StatusError is the translated form of a non-success native status.
type StatusError struct {
	// Code is the native status.
	Code Status

	// Message is the driver-supplied description, if any.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return "cqlbridge: " + e.Code.String()
	}

	return "cqlbridge: " + e.Code.String() + ": " + e.Message
}

// Is matches another *StatusError with the same code, which lets callers
// compare against a code with errors.Is(err, &StatusError{Code: ...}).
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)

	return ok && t.Code == e.Code
}

// ErrorFromStatus translates a native status into an error.
//
// It never fails: StatusOK yields nil and every other value yields a
// *StatusError carrying the code.
//
// Parameters:
//   - code: Native status code
//   - message: Optional driver message
//
// Returns:
//   - error: nil on success, *StatusError otherwise
func ErrorFromStatus(code Status, message string) error {
	if code == StatusOK {
		return nil
	}

	return &StatusError{Code: code, Message: message}
}

// StatusOf extracts the native status from an error chain.
//
// Returns:
//   - Status: The status, or StatusOK when err is nil
//   - bool: false if err is non-nil and carries no native status
func StatusOf(err error) (Status, bool) {
	if err == nil {
		return StatusOK, true
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}

	return 0, false
}
