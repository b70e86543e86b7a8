package commissions

import "github.com/dmarroquin/freightops-backend/pkg/db/models"

// InboundDetector decides whether a lead originated from an inbound channel.
// The inbound split factor only applies to leads the detector flags.
type InboundDetector interface {
	IsInbound(lead models.Lead) bool
}

// NoInboundDetector treats every lead as outbound. This is the default until
// an org wires a marketing attribution source.
type NoInboundDetector struct{}

// IsInbound implements InboundDetector.
func (NoInboundDetector) IsInbound(models.Lead) bool { return false }

// SourceInboundDetector flags leads whose inbound_source column is set.
type SourceInboundDetector struct{}

// IsInbound implements InboundDetector.
func (SourceInboundDetector) IsInbound(lead models.Lead) bool {
	return lead.InboundSource != nil && *lead.InboundSource != ""
}
