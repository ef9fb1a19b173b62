package widgetmessages

const (
	MsgFetching  = "Fetching GitHub Data ..."
	MsgNoData    = "No data."
	MsgYesterday = "yesterday"
	MsgLastWeek  = "last week"
)
