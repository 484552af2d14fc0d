package gpg

import "strings"

// StatusMarker prefixes every status line gpg writes to the status fd.
const StatusMarker = "[GNUPG:] "

// StatusCode is a gpg status keyword. Keywords this package does not know
// about map to StatusUnknown; the raw keyword is kept on the StatusMessage.
type StatusCode int

const (
	StatusUnknown StatusCode = iota
	StatusNewSig
	StatusGoodSig
	StatusExpSig
	StatusExpKeySig
	StatusRevKeySig
	StatusBadSig
	StatusErrSig
	StatusValidSig
	StatusSigID
	StatusEncTo
	StatusBeginDecryption
	StatusEndDecryption
	StatusDecryptionKey
	StatusDecryptionInfo
	StatusDecryptionFailed
	StatusDecryptionOkay
	StatusSessionKey
	StatusNoPubKey
	StatusNoSecKey
	StatusKeyConsidered
	StatusKeyExpired
	StatusKeyRevoked
	StatusBeginEncryption
	StatusEndEncryption
	StatusInvRecp
	StatusNoRecp
	StatusInvSgnr
	StatusNoSgnr
	StatusBeginSigning
	StatusSigCreated
	StatusPlaintext
	StatusPlaintextLength
	StatusGoodMDC
	StatusBadMDC
	StatusErrMDC
	StatusUserIDHint
	StatusNeedPassphrase
	StatusMissingPassphrase
	StatusBadPassphrase
	StatusGoodPassphrase
	StatusPinentryLaunched
	StatusInquireMaxLen
	StatusImportOK
	StatusImported
	StatusImportRes
	StatusKeyCreated
	StatusProgress
	StatusWarning
	StatusError
	StatusFailure
	StatusSuccess
)

var statusNames = map[StatusCode]string{
	StatusUnknown:           "UNKNOWN",
	StatusNewSig:            "NEWSIG",
	StatusGoodSig:           "GOODSIG",
	StatusExpSig:            "EXPSIG",
	StatusExpKeySig:         "EXPKEYSIG",
	StatusRevKeySig:         "REVKEYSIG",
	StatusBadSig:            "BADSIG",
	StatusErrSig:            "ERRSIG",
	StatusValidSig:          "VALIDSIG",
	StatusSigID:             "SIG_ID",
	StatusEncTo:             "ENC_TO",
	StatusBeginDecryption:   "BEGIN_DECRYPTION",
	StatusEndDecryption:     "END_DECRYPTION",
	StatusDecryptionKey:     "DECRYPTION_KEY",
	StatusDecryptionInfo:    "DECRYPTION_INFO",
	StatusDecryptionFailed:  "DECRYPTION_FAILED",
	StatusDecryptionOkay:    "DECRYPTION_OKAY",
	StatusSessionKey:        "SESSION_KEY",
	StatusNoPubKey:          "NO_PUBKEY",
	StatusNoSecKey:          "NO_SECKEY",
	StatusKeyConsidered:     "KEY_CONSIDERED",
	StatusKeyExpired:        "KEYEXPIRED",
	StatusKeyRevoked:        "KEYREVOKED",
	StatusBeginEncryption:   "BEGIN_ENCRYPTION",
	StatusEndEncryption:     "END_ENCRYPTION",
	StatusInvRecp:           "INV_RECP",
	StatusNoRecp:            "NO_RECP",
	StatusInvSgnr:           "INV_SGNR",
	StatusNoSgnr:            "NO_SGNR",
	StatusBeginSigning:      "BEGIN_SIGNING",
	StatusSigCreated:        "SIG_CREATED",
	StatusPlaintext:         "PLAINTEXT",
	StatusPlaintextLength:   "PLAINTEXT_LENGTH",
	StatusGoodMDC:           "GOODMDC",
	StatusBadMDC:            "BADMDC",
	StatusErrMDC:            "ERRMDC",
	StatusUserIDHint:        "USERID_HINT",
	StatusNeedPassphrase:    "NEED_PASSPHRASE",
	StatusMissingPassphrase: "MISSING_PASSPHRASE",
	StatusBadPassphrase:     "BAD_PASSPHRASE",
	StatusGoodPassphrase:    "GOOD_PASSPHRASE",
	StatusPinentryLaunched:  "PINENTRY_LAUNCHED",
	StatusInquireMaxLen:     "INQUIRE_MAXLEN",
	StatusImportOK:          "IMPORT_OK",
	StatusImported:          "IMPORTED",
	StatusImportRes:         "IMPORT_RES",
	StatusKeyCreated:        "KEY_CREATED",
	StatusProgress:          "PROGRESS",
	StatusWarning:           "WARNING",
	StatusError:             "ERROR",
	StatusFailure:           "FAILURE",
	StatusSuccess:           "SUCCESS",
}

var statusCodes = func() map[string]StatusCode {
	codes := make(map[string]StatusCode, len(statusNames))
	for code, name := range statusNames {
		if code != StatusUnknown {
			codes[name] = code
		}
	}
	return codes
}()

func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}

// ParseStatusCode maps a raw keyword to its StatusCode. Matching is case
// sensitive, like gpg's own output.
func ParseStatusCode(raw string) StatusCode {
	if code, ok := statusCodes[raw]; ok {
		return code
	}
	return StatusUnknown
}

// StatusMessage is a single line of gpg's status output.
type StatusMessage struct {
	Code    StatusCode
	RawCode string
	Message string
}

func (m StatusMessage) String() string {
	return "[" + m.RawCode + "] " + m.Message
}

// ParseStatusLine parses a stderr line. The second return value is false when
// the line does not carry the status marker.
func ParseStatusLine(line string) (StatusMessage, bool) {
	payload, ok := strings.CutPrefix(line, StatusMarker)
	if !ok {
		return StatusMessage{}, false
	}
	raw, message, _ := strings.Cut(payload, " ")
	return StatusMessage{
		Code:    ParseStatusCode(raw),
		RawCode: raw,
		Message: message,
	}, true
}
