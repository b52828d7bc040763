package airtable

import "time"

const (
	defaultBaseURL     = "https://api.airtable.com/v0"
	defaultTable       = "Athletes"
	defaultPageSize    = 100
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxPages    = 50
)
