package board

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// fingerprintDomain is the domain prefix for board fingerprints.
// Format: SHA256(domain + 0x00 + canonical bytes). The null separator
// prevents domain/data boundary ambiguity; the version suffix enables
// future algorithm migration.
const fingerprintDomain = "easel/board/v1"

// Fingerprint returns a stable content hash of the board.
//
// Two engines holding the same records in the same bottom-to-top order
// produce the same fingerprint, regardless of the order their inputs
// were supplied in. The persistence layer uses this to skip no-op saves;
// the CLI reports it as the board identity.
//
// Canonicalization: records are encoded in sequence order as JSON with
// sorted object keys and all strings NFC-normalized, so visually
// identical payloads hash identically across platforms and input
// methods.
func (e *Engine) Fingerprint() (string, error) {
	entries := make([]any, 0, len(e.records))
	for _, r := range e.records {
		entry := map[string]any{
			"id": norm.NFC.String(r.ID),
		}
		if r.LowerID != nil {
			entry["lower_id"] = norm.NFC.String(*r.LowerID)
		}
		if r.Data != nil {
			entry["data"] = normalizeValue(r.Data)
		}
		entries = append(entries, entry)
	}

	// encoding/json sorts map keys, which is all the canonical form
	// needs once strings are normalized.
	canonical, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("fingerprint: marshal canonical form: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// normalizeValue NFC-normalizes every string reachable in a payload
// value, including map keys. Non-string scalars pass through unchanged.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return norm.NFC.String(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[norm.NFC.String(k)] = normalizeValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeValue(elem)
		}
		return out
	default:
		return v
	}
}
