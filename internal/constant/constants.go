package constant

// Integration points tracked by the monitor. Each external call is recorded
// under exactly one of these names.
const (
	IntegrationBirthChart = "birth_chart"
	IntegrationGuidance   = "guidance_rag"
	IntegrationFollowUp   = "follow_up_email"
)

// Guidance compose modes, persisted in session metadata.
const (
	GuidanceModeRAG      = "rag"
	GuidanceModeTemplate = "template"
)

// Credit transaction note templates
const (
	NoteSessionSpend     = "session guidance"
	NoteTopUp            = "midtrans top-up"
	NoteSettlementRefund = "automatic refund: settlement failed after debit"
	NoteManualAdjustment = "manual adjustment"
)
