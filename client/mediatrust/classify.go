// Package mediatrust classifies render-media artifacts into the trust
// handling their content requires.
//
// The package decides classification only; it performs no sanitization.
// Foreign content is never implicitly trusted: a missing or malformed
// foreign_content field fails the whole artifact closed.
package mediatrust

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lverhagen/agentlink/client/events"
)

// Trust is the required handling for a media artifact.
type Trust string

const (
	// TrustDirect allows rendering in the host surface.
	TrustDirect Trust = "direct"
	// TrustSandboxed requires rendering inside an isolation boundary.
	TrustSandboxed Trust = "sandboxed"
)

// ErrInvalidSecurityField marks a render-media event whose
// foreign_content field is absent or not a boolean. Such events must not
// be rendered at all.
var ErrInvalidSecurityField = errors.New("invalid foreign_content security field")

// Caller-visible, non-blocking classification warnings.
const (
	// WarningInternalMarkupTrusted flags internal HTML/SVG rendered
	// directly under the trusted-by-policy rule.
	WarningInternalMarkupTrusted = "internal-markup-trusted"
	// WarningForeignContentMissingSource flags foreign content arriving
	// without a source URL.
	WarningForeignContentMissingSource = "foreign-content-missing-source"
	// WarningScriptContent flags content types indicating executable
	// script.
	WarningScriptContent = "script-content"
)

// Classification is the outcome for one artifact.
type Classification struct {
	Trust    Trust
	Warnings []string
}

// Classify decides the required trust handling for a render-media event.
//
// foreign_content=true forces TrustSandboxed for every content type. A
// non-boolean or missing foreign_content is an error and the artifact
// must not be rendered; there is no default-safe fallback.
func Classify(media events.RenderMedia) (Classification, error) {
	foreign, err := decodeForeignContent(media.ForeignContent)
	if err != nil {
		return Classification{}, err
	}

	classification := Classification{Trust: TrustDirect}
	contentType := normalizeContentType(media.ContentType)

	if isScriptType(contentType) {
		classification.Warnings = append(classification.Warnings, WarningScriptContent)
	}

	if foreign {
		classification.Trust = TrustSandboxed
		if media.URL == "" {
			classification.Warnings = append(classification.Warnings, WarningForeignContentMissingSource)
		}
		return classification, nil
	}

	if isMarkupType(contentType) {
		classification.Warnings = append(classification.Warnings, WarningInternalMarkupTrusted)
	}
	return classification, nil
}

func decodeForeignContent(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 {
		return false, fmt.Errorf("%w: field missing", ErrInvalidSecurityField)
	}
	var foreign bool
	if err := json.Unmarshal(raw, &foreign); err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidSecurityField, raw)
	}
	return foreign, nil
}

func normalizeContentType(contentType string) string {
	normalized, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(normalized))
}

func isMarkupType(contentType string) bool {
	switch contentType {
	case "text/html", "application/xhtml+xml", "image/svg+xml":
		return true
	}
	return false
}

func isScriptType(contentType string) bool {
	switch contentType {
	case "application/javascript", "text/javascript",
		"application/ecmascript", "text/ecmascript":
		return true
	}
	return false
}
