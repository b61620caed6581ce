package constant

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	MessageStatusSent  = "sent"
	ReplySubjectPrefix = "Re: "

	InboxLimit         = 50
	InboxSnippetLength = 100
)

const (
	ThreadActivityLimit = 10
	DefaultChartDays    = 7
	MaxChartDays        = 365
)
